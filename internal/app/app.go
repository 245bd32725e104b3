package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/state"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// System функция, выполняемая планировщиком раз в тик (или один раз при входе в состояние)
type System func(ctx context.Context)

// Condition условие запуска системы, проверяется перед каждым вызовом
type Condition func() bool

// InState условие "автомат находится в состоянии s"
func InState(machine *state.Machine, s state.GameState) Condition {
	return func() bool {
		return machine.Is(s)
	}
}

type namedSystem struct {
	name       string
	run        System
	conditions []Condition
}

func (s namedSystem) shouldRun() bool {
	for _, cond := range s.conditions {
		if !cond() {
			return false
		}
	}
	return true
}

// App кооперативный планировщик тиков.
//
// Порядок фаз внутри тика:
//  1. применение перехода состояния и OnEnter-системы нового состояния;
//  2. Update (применение событий регистрации);
//  3. Last (опрос загрузки ресурсов, метрики).
//
// Системы регистрируются до Run. Panic системы не перехватывается.
type App struct {
	machine *state.Machine
	onEnter map[state.GameState][]namedSystem
	update  []namedSystem
	last    []namedSystem

	tickObserver func(time.Duration)
	ticks        atomic.Uint64
	tracer       trace.Tracer
}

// New создаёт планировщик для указанного автомата состояний
func New(machine *state.Machine) *App {
	return &App{
		machine: machine,
		onEnter: make(map[state.GameState][]namedSystem),
		tracer:  otel.Tracer("blockverse/app"),
	}
}

// Machine возвращает автомат состояний приложения
func (a *App) Machine() *state.Machine {
	return a.machine
}

// AddOnEnter добавляет систему, выполняемую один раз при входе в состояние s
func (a *App) AddOnEnter(s state.GameState, name string, system System) *App {
	a.onEnter[s] = append(a.onEnter[s], namedSystem{name: name, run: system})
	return a
}

// AddUpdate добавляет систему фазы Update
func (a *App) AddUpdate(name string, system System, conditions ...Condition) *App {
	a.update = append(a.update, namedSystem{name: name, run: system, conditions: conditions})
	return a
}

// AddLast добавляет систему фазы Last
func (a *App) AddLast(name string, system System, conditions ...Condition) *App {
	a.last = append(a.last, namedSystem{name: name, run: system, conditions: conditions})
	return a
}

// OnTickDone задаёт обработчик длительности каждого тика (метрики)
func (a *App) OnTickDone(fn func(time.Duration)) {
	a.tickObserver = fn
}

// TickCount возвращает количество завершённых тиков
func (a *App) TickCount() uint64 {
	return a.ticks.Load()
}

// Tick выполняет один тик: переход состояния, Update, Last
func (a *App) Tick(ctx context.Context) {
	start := time.Now()
	n := a.ticks.Load() + 1

	ctx, span := a.tracer.Start(ctx, "tick", trace.WithAttributes(attribute.Int64("tick", int64(n))))
	defer span.End()

	if s, entered := a.machine.ApplyTransition(); entered {
		span.AddEvent("state_entered", trace.WithAttributes(attribute.String("state", s.String())))
		a.runPhase(ctx, "on_enter_"+s.String(), a.onEnter[s])
	}
	a.runPhase(ctx, "update", a.update)
	a.runPhase(ctx, "last", a.last)

	a.ticks.Store(n)
	if a.tickObserver != nil {
		a.tickObserver(time.Since(start))
	}
}

func (a *App) runPhase(ctx context.Context, phase string, systems []namedSystem) {
	if len(systems) == 0 {
		return
	}

	ctx, span := a.tracer.Start(ctx, phase)
	defer span.End()

	for _, s := range systems {
		if !s.shouldRun() {
			continue
		}
		logging.Trace("[app] %s: %s", phase, s.name)
		s.run(ctx)
	}
}

// Run вызывает Tick с заданным интервалом до отмены контекста.
// Первый тик выполняется сразу.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logging.Info("⏱️ Планировщик запущен, интервал тика %s", interval)
	a.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("⏹️ Планировщик остановлен после %d тиков", a.TickCount())
			return nil
		case <-ticker.C:
			a.Tick(ctx)
		}
	}
}

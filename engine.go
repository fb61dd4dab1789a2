package motion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the registry size used when no capacity is configured.
const DefaultCapacity = 1024

// Engine schedules animations and advances them on Tick. It is driven by the
// host: nothing happens between calls. An Engine is not safe for concurrent
// use; hosts that tick from another goroutine must guard every call with one
// lock (see IntervalTicks).
type Engine struct {
	id     uuid.UUID
	logger *slog.Logger
	debug  bool

	reg     registry
	pool    valuePool
	layers  *LayerManager
	monitor *PerformanceMonitor
	budget  Budget
	advice  Advice
	diag    Diagnostics

	facility  NativeFacility
	sink      PropertySink
	layerHost LayerHost
	observers []Observer
	clock     Clock

	now    float64
	ticked bool
	active int
	stats  tickStats
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig applies the budget, capacity and debug settings of cfg.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.budget = cfg.Budget
		if cfg.Capacity > 0 {
			e.reg.capacity = cfg.Capacity
		}
		e.debug = cfg.Debug
	}
}

// WithBudget sets the performance budget.
func WithBudget(b Budget) Option {
	return func(e *Engine) { e.budget = b }
}

// WithCapacity caps the number of registered animations, including
// terminal ones not yet cleaned up.
func WithCapacity(n int) Option {
	return func(e *Engine) { e.reg.capacity = n }
}

// WithNativeFacility enables the native backend.
func WithNativeFacility(f NativeFacility) Option {
	return func(e *Engine) { e.facility = f }
}

// WithSink sets where manual-loop values are pushed each tick. If the sink
// also implements LayerHost it receives layer promotions.
func WithSink(s PropertySink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithLogger overrides the package logger for this engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithDebug enables per-tick debug logging.
func WithDebug(on bool) Option {
	return func(e *Engine) { e.debug = on }
}

// WithClock sets the clock used by MotionValues for hand-set values.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// New returns an engine with the default budget and capacity.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:     uuid.New(),
		budget: DefaultBudget(),
		reg:    newRegistry(DefaultCapacity),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = Logger()
	}
	e.logger = e.logger.With("engine", e.id.String())
	if e.clock == nil {
		e.clock = SystemClock()
	}
	if err := e.budget.Validate(); err != nil {
		e.logger.Warn("invalid budget, using defaults", "err", err)
		e.budget = DefaultBudget()
	}
	e.pool.limit = e.budget.MaxPooled
	e.monitor = NewPerformanceMonitor(e.budget)
	e.layers = NewLayerManager(e.budget.MaxLayers)
	e.advice = Advice{LayerCap: e.budget.MaxLayers}
	if lh, ok := e.sink.(LayerHost); ok {
		e.layerHost = lh
	}
	e.layers.OnPromote = func(h Handle, element any) {
		if e.layerHost != nil {
			e.layerHost.Promote(element)
		}
	}
	e.layers.OnDemote = func(h Handle, element any) {
		if e.layerHost != nil {
			e.layerHost.Demote(element)
		}
	}
	e.logger.Info("engine created",
		"capacity", e.reg.capacity,
		"native", e.facility != nil,
		"maxLayers", e.budget.MaxLayers)
	return e
}

// ID returns the engine's unique identifier, also attached to its logs.
func (e *Engine) ID() uuid.UUID { return e.id }

// Now returns the timestamp of the last accepted tick.
func (e *Engine) Now() float64 { return e.now }

// Len returns the number of registered animations, terminal ones included.
func (e *Engine) Len() int { return e.reg.len() }

// Layers returns the engine's layer manager.
func (e *Engine) Layers() *LayerManager { return e.layers }

// --- Create ---

// CreateOption configures a single animation.
type CreateOption func(*createOptions)

type createOptions struct {
	from         Target
	element      any
	label        string
	requireLayer bool
	deferred     bool
	onComplete   func(Handle)
}

// From sets explicit start values. Properties not listed start at the zero
// value of the destination's kind.
func From(t Target) CreateOption {
	return func(o *createOptions) { o.from = t }
}

// OnElement attaches the host element passed to the sink and the native
// facility.
func OnElement(ref any) CreateOption {
	return func(o *createOptions) { o.element = ref }
}

// WithLabel names the animation in logs.
func WithLabel(label string) CreateOption {
	return func(o *createOptions) { o.label = label }
}

// RequireLayer makes Create fail with ErrCapacityExceeded when no layer can
// be granted.
func RequireLayer() CreateOption {
	return func(o *createOptions) { o.requireLayer = true }
}

// Deferred leaves the animation Idle until Start is called.
func Deferred() CreateOption {
	return func(o *createOptions) { o.deferred = true }
}

// OnComplete registers fn to run when the animation completes normally.
func OnComplete(fn func(Handle)) CreateOption {
	return func(o *createOptions) { o.onComplete = fn }
}

// Create registers an animation moving toward target and starts it. Start
// time is anchored on the next Tick. A rejected Create leaves no trace in
// the registry.
func (e *Engine) Create(target Target, tr Transition, opts ...CreateOption) (Handle, error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	return e.create("create", target, tr, o)
}

func (e *Engine) create(op string, target Target, tr Transition, o createOptions) (Handle, error) {
	if err := tr.Validate(); err != nil {
		return Handle{}, configError(op, err)
	}
	if len(target) == 0 {
		return Handle{}, configError(op, fmt.Errorf("empty target"))
	}
	if err := target.validate(); err != nil {
		return Handle{}, configError(op, err)
	}
	if err := o.from.validate(); err != nil {
		return Handle{}, configError(op, err)
	}
	from, err := resolveFrom(o.from, target)
	if err != nil {
		return Handle{}, configError(op, err)
	}
	if err := e.checkRoom(op, target, o); err != nil {
		return Handle{}, err
	}

	en := e.pool.acquireEntry()
	en.from = from
	en.to = target.Clone()
	en.delay = tr.Delay
	en.easing = tr.Easing
	en.space = tr.ColorSpace
	if cfg, ok := tr.Easing.SpringConfig(); ok {
		en.kind = kindSpring
		e.fillProps(en, from)
		en.initSprings(cfg)
	} else {
		en.kind = kindTween
		en.clock = newTweenClock(tr)
		e.fillProps(en, from)
	}
	return e.register(op, en, tr, o)
}

// CreateSequence registers a Sequence as one animation. Sequences always
// run on the manual loop.
func (e *Engine) CreateSequence(seq Sequence, opts ...CreateOption) (Handle, error) {
	const op = "create sequence"
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.from.validate(); err != nil {
		return Handle{}, configError(op, err)
	}
	cs, err := compileSequence(seq, o.from)
	if err != nil {
		return Handle{}, configError(op, err)
	}
	if err := e.checkRoom(op, cs.final, o); err != nil {
		return Handle{}, err
	}
	en := e.pool.acquireEntry()
	en.kind = kindSequence
	en.seq = cs
	en.from = cs.bases[0]
	en.to = cs.final
	en.space = seq.ColorSpace
	e.fillProps(en, cs.bases[0])
	return e.register(op, en, Transition{ColorSpace: seq.ColorSpace}, o)
}

// CreateGroup starts one animation per target sharing tr, offsetting each
// start by tr.Stagger. Either every animation is created or none is.
func (e *Engine) CreateGroup(targets []Target, tr Transition, opts ...CreateOption) ([]Handle, error) {
	const op = "create group"
	if len(targets) == 0 {
		return nil, nil
	}
	if free := e.reg.capacity - e.reg.len(); e.reg.capacity > 0 && len(targets) > free {
		return nil, &Error{Op: op, Err: ErrCapacityExceeded}
	}
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	handles := make([]Handle, 0, len(targets))
	for i, t := range targets {
		item := tr
		if s := tr.Stagger; s != nil {
			item.Delay += StaggerDelay(i, len(targets), s.Each, s.From, s.Origin)
		}
		h, err := e.create(op, t, item, o)
		if err != nil {
			for _, created := range handles {
				e.discard(created)
			}
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// checkRoom fails when the registry, or a required layer, is full.
func (e *Engine) checkRoom(op string, target Target, o createOptions) error {
	if e.reg.capacity > 0 && e.reg.len() >= e.reg.capacity {
		return &Error{Op: op, Err: ErrCapacityExceeded}
	}
	if o.requireLayer {
		if !layerEligible(target) {
			return configError(op, fmt.Errorf("layer required but not every property is layer-friendly"))
		}
		if e.layers.Len() >= e.layers.Cap() {
			return &Error{Op: op, Err: fmt.Errorf("%w: layer cap %d reached", ErrCapacityExceeded, e.layers.Cap())}
		}
	}
	return nil
}

func (e *Engine) fillProps(en *entry, start Target) {
	if en.values == nil {
		en.values = make(map[string]*MotionValue, len(start))
	}
	if en.frame == nil {
		en.frame = make(Target, len(start))
	}
	en.props = append(en.props[:0], start.Keys()...)
	for _, k := range en.props {
		en.values[k] = e.pool.acquireValue(start[k], e.now, e.clock)
		en.frame[k] = start[k]
	}
}

// register inserts en, chooses its backend and starts it.
func (e *Engine) register(op string, en *entry, tr Transition, o createOptions) (Handle, error) {
	en.element = o.element
	en.label = o.label
	en.onComplete = o.onComplete
	en.state = StateIdle

	h, err := e.reg.insert(en)
	if err != nil {
		e.pool.releaseEntry(en)
		return Handle{}, &Error{Op: op, Err: err}
	}

	backend, unsupported := chooseBackend(e.facility, en.kind == kindSpring, en.kind == kindSequence, en.to)
	if len(unsupported) > 0 {
		e.diag.UnsupportedProperties += len(unsupported)
		e.diag.NativeFallbacks++
		e.logger.Debug("native backend unavailable, using manual loop",
			"handle", h.String(), "label", en.label, "unsupported", unsupported,
			"err", ErrUnsupportedProperty)
	}
	if backend == BackendNative {
		anim, err := e.facility.Play(NativeRequest{
			Handle:     h,
			Element:    en.element,
			From:       en.from.Clone(),
			To:         en.to.Clone(),
			Transition: tr,
		})
		if err != nil {
			e.diag.NativeFallbacks++
			e.logger.Debug("native play failed, using manual loop",
				"handle", h.String(), "label", en.label, "err", err)
			backend = BackendManual
		} else {
			en.native = anim
		}
	}
	en.backend = backend

	if o.requireLayer || layerEligible(en.to) {
		e.layers.Promote(h, en.element, e.now)
	}
	e.active++
	if !o.deferred {
		e.setState(en, StateRunning)
	}
	return h, nil
}

// discard removes a freshly created entry without notifying completion.
func (e *Engine) discard(h Handle) {
	en := e.reg.get(h)
	if en == nil {
		return
	}
	if en.native != nil {
		en.native.Cancel()
	}
	if !en.state.Terminal() {
		e.active--
	}
	e.layers.Demote(h)
	e.reg.remove(h)
	e.pool.releaseEntry(en)
}

// --- Control ---

func (e *Engine) liveEntry(op string, h Handle) (*entry, error) {
	en := e.reg.get(h)
	if en == nil || !en.live() {
		return nil, handleError(op, h)
	}
	return en, nil
}

// Start runs an Idle animation. It is a no-op for animations already
// started.
func (e *Engine) Start(h Handle) error {
	en, err := e.liveEntry("start", h)
	if err != nil {
		return err
	}
	if en.state == StateIdle {
		en.anchored = false
		e.setState(en, StateRunning)
	}
	return nil
}

// Stop cancels an animation immediately. IsRunning is false on return.
func (e *Engine) Stop(h Handle) error {
	en, err := e.liveEntry("stop", h)
	if err != nil {
		return err
	}
	e.finish(en, StateCancelled)
	return nil
}

// Pause freezes a running animation. Its elapsed time stops accumulating
// until Resume.
func (e *Engine) Pause(h Handle) error {
	en, err := e.liveEntry("pause", h)
	if err != nil {
		return err
	}
	if en.state != StateRunning {
		return nil
	}
	en.anchored = false
	if en.native != nil {
		en.native.Pause()
	}
	e.setState(en, StatePaused)
	return nil
}

// Resume continues a paused animation from where it stopped. The next Tick
// re-anchors its clock so the value does not jump.
func (e *Engine) Resume(h Handle) error {
	en, err := e.liveEntry("resume", h)
	if err != nil {
		return err
	}
	if en.state != StatePaused {
		return nil
	}
	en.anchored = false
	if en.native != nil {
		en.native.Resume()
	}
	e.setState(en, StateRunning)
	return nil
}

// Seek moves an animation to local time t (seconds since its start,
// including its delay) and recomputes its values at once. The state is not
// changed; a seek past the end completes the animation on its next running
// tick.
func (e *Engine) Seek(h Handle, t float64) error {
	en, err := e.liveEntry("seek", h)
	if err != nil {
		return err
	}
	if !finite(t) || t < 0 {
		return &Error{Op: "seek", Handle: h, Err: fmt.Errorf("%w: seek time must be finite and non-negative, got %v", ErrInvalidConfiguration, t)}
	}
	en.elapsed = t
	if en.kind == kindSpring {
		en.restartSprings()
	}
	en.sample(e.now)
	if en.backend == BackendManual && e.sink != nil {
		e.sink.Apply(en.element, en.frame)
	}
	return nil
}

// StopAll cancels every live animation and returns how many were stopped.
func (e *Engine) StopAll() int {
	n := 0
	e.reg.each(func(en *entry) {
		if en.live() {
			e.finish(en, StateCancelled)
			n++
		}
	})
	return n
}

// PauseAll pauses every running animation and returns how many changed.
func (e *Engine) PauseAll() int {
	n := 0
	e.reg.each(func(en *entry) {
		if en.state == StateRunning {
			_ = e.Pause(en.handle)
			n++
		}
	})
	return n
}

// ResumeAll resumes every paused animation and returns how many changed.
func (e *Engine) ResumeAll() int {
	n := 0
	e.reg.each(func(en *entry) {
		if en.state == StatePaused {
			_ = e.Resume(en.handle)
			n++
		}
	})
	return n
}

// Cleanup releases every Completed and Cancelled animation back to the pool
// and returns how many were released. Their handles become invalid.
func (e *Engine) Cleanup() int {
	n := 0
	for i := range e.reg.slots {
		en := e.reg.slots[i].entry
		if en == nil || en.live() {
			continue
		}
		e.reg.remove(en.handle)
		e.pool.releaseEntry(en)
		n++
	}
	if !e.advice.PreferPool {
		e.pool.trim(e.budget.MaxPooled / 4)
	}
	if n > 0 {
		e.logger.Debug("cleanup", "released", n, "pooled", e.pool.size())
	}
	return n
}

func (e *Engine) finish(en *entry, to PlaybackState) {
	if to == StateCancelled && en.native != nil {
		en.native.Cancel()
	}
	e.layers.Demote(en.handle)
	e.active--
	e.setState(en, to)
	if to == StateCompleted && en.onComplete != nil {
		en.onComplete(en.handle)
	}
}

func (e *Engine) setState(en *entry, to PlaybackState) {
	from := en.state
	if from == to {
		return
	}
	en.state = to
	if e.debug {
		e.logger.Debug("state changed", "handle", en.handle.String(), "label", en.label,
			"from", from.String(), "to", to.String())
	}
	for _, o := range e.observers {
		o.AnimationStateChanged(en.handle, from, to)
	}
}

// --- Reads ---

// State returns the animation's state. Terminal animations can be queried
// until Cleanup.
func (e *Engine) State(h Handle) (PlaybackState, error) {
	en := e.reg.get(h)
	if en == nil {
		return 0, handleError("state", h)
	}
	return en.state, nil
}

// IsRunning reports whether h is a Running animation.
func (e *Engine) IsRunning(h Handle) bool {
	en := e.reg.get(h)
	return en != nil && en.state == StateRunning
}

func (e *Engine) value(op string, h Handle, prop string) (*MotionValue, error) {
	en := e.reg.get(h)
	if en == nil {
		return nil, handleError(op, h)
	}
	mv, ok := en.values[prop]
	if !ok {
		return nil, &Error{Op: op, Handle: h, Property: prop, Err: ErrUnknownProperty}
	}
	return mv, nil
}

// Get returns the current value of prop.
func (e *Engine) Get(h Handle, prop string) (Value, error) {
	mv, err := e.value("get", h, prop)
	if err != nil {
		return Value{}, err
	}
	return mv.Get(), nil
}

// Velocity returns the velocity of prop in units per second.
func (e *Engine) Velocity(h Handle, prop string) (float64, error) {
	mv, err := e.value("velocity", h, prop)
	if err != nil {
		return 0, err
	}
	return mv.Velocity(), nil
}

// Values returns a copy of every animated property.
func (e *Engine) Values(h Handle) (Target, error) {
	en := e.reg.get(h)
	if en == nil {
		return nil, handleError("values", h)
	}
	out := make(Target, len(en.props))
	for _, k := range en.props {
		out[k] = en.values[k].Get()
	}
	return out, nil
}

// Watch subscribes fn to every change of prop. The returned function
// unsubscribes; it is safe to call after Cleanup.
func (e *Engine) Watch(h Handle, prop string, fn func(Value)) (func(), error) {
	mv, err := e.value("watch", h, prop)
	if err != nil {
		return nil, err
	}
	return mv.Subscribe(fn), nil
}

// Progress returns the animation's overall progress in [0, 1]. Infinite
// repeats report progress within the current cycle.
func (e *Engine) Progress(h Handle) (float64, error) {
	en := e.reg.get(h)
	if en == nil {
		return 0, handleError("progress", h)
	}
	return en.progress, nil
}

// Backend returns the backend chosen for h at creation.
func (e *Engine) Backend(h Handle) (Backend, error) {
	en := e.reg.get(h)
	if en == nil {
		return 0, handleError("backend", h)
	}
	return en.backend, nil
}

// Metrics returns a performance snapshot. It reports false until two ticks
// have been seen.
func (e *Engine) Metrics() (PerformanceReport, bool) {
	if e.monitor.Frames() == 0 {
		return PerformanceReport{}, false
	}
	r := e.monitor.Report(e.active, e.layers.Len(), e.pool.size())
	r.Diagnostics = e.diag
	r.Diagnostics.TickErrors = append([]TickError(nil), e.diag.TickErrors...)
	return r, true
}

// --- Tick ---

// Tick advances every running animation to timestamp ts, in seconds on any
// monotonic scale. All animations see the same timestamp. A non-finite or
// backwards timestamp is ignored.
func (e *Engine) Tick(ts float64) {
	if !finite(ts) || (e.ticked && ts < e.now) {
		e.diag.RejectedTicks++
		e.logger.Warn("tick rejected", "timestamp", ts, "last", e.now)
		return
	}
	var start time.Time
	if e.debug {
		start = time.Now()
		e.stats = tickStats{}
	}
	if e.ticked {
		e.monitor.Record(ts - e.now)
	}
	e.now = ts
	e.ticked = true

	e.reg.each(func(en *entry) {
		if en.state == StateRunning {
			e.advance(en, ts)
		}
	})
	e.applyAdvice()

	if e.debug {
		e.stats.elapsed = time.Since(start)
		e.debugLog(e.stats)
	}
}

// advance moves one entry forward. A panic is contained to the entry, which
// is cancelled and recorded in diagnostics.
func (e *Engine) advance(en *entry, ts float64) {
	defer func() {
		if r := recover(); r != nil {
			e.diag.recordTickError(TickError{Handle: en.handle, Value: r, Timestamp: ts})
			e.stats.failed++
			e.logger.Warn("animation failed during tick",
				"handle", en.handle.String(), "label", en.label, "panic", fmt.Sprint(r))
			if en.live() {
				e.finish(en, StateCancelled)
			}
		}
	}()
	en.advanceClock(ts)
	done := en.sample(ts)
	e.stats.advanced++
	if en.backend == BackendManual && e.sink != nil {
		e.sink.Apply(en.element, en.frame)
	}
	e.layers.Touch(en.handle, ts)
	if done {
		e.stats.completed++
		e.finish(en, StateCompleted)
	}
}

// applyAdvice follows the monitor's advice: a lower layer cap while over
// budget, and pooling instead of trimming.
func (e *Engine) applyAdvice() {
	if e.monitor.Frames() == 0 {
		return
	}
	r := e.monitor.Report(e.active, e.layers.Len(), e.pool.size())
	if r.Advice.LayerCap != e.layers.Cap() {
		demoted := e.layers.SetCap(r.Advice.LayerCap)
		e.diag.LayerDemotions += demoted
		e.logger.Debug("layer cap changed", "cap", r.Advice.LayerCap, "demoted", demoted,
			"overBudget", r.OverBudget, "avgFrame", r.AverageFrameTime)
	}
	e.advice = r.Advice
}

// --- Tick sources ---

// Attach subscribes the engine's Tick to src and returns the detach
// function.
func (e *Engine) Attach(src TickSource) func() {
	return src.Subscribe(e.Tick)
}

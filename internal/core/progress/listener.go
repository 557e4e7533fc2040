package progress

// Listener observes the timer lifecycle. Callbacks run synchronously on the
// scheduler's owner thread and must return quickly.
type Listener interface {
	OnStart()
	OnPause()
	OnUpdate(progress int)
	OnEnd()
}

// ListenerFuncs adapts optional functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Start  func()
	Pause  func()
	Update func(progress int)
	End    func()
}

func (funcs ListenerFuncs) OnStart() {
	if funcs.Start != nil {
		funcs.Start()
	}
}

func (funcs ListenerFuncs) OnPause() {
	if funcs.Pause != nil {
		funcs.Pause()
	}
}

func (funcs ListenerFuncs) OnUpdate(progress int) {
	if funcs.Update != nil {
		funcs.Update(progress)
	}
}

func (funcs ListenerFuncs) OnEnd() {
	if funcs.End != nil {
		funcs.End()
	}
}

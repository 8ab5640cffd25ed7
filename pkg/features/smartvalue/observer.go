package smartvalue

// Observer receives a notification for every write and reset of a
// container. Implementations must be cheap; they run on the caller's
// goroutine inside Set, Update and Reset.
type Observer interface {
	ObserveWrite(name string, mode Mode)
	ObserveReset(name string, mode Mode)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnWrite func(name string, mode Mode)
	OnReset func(name string, mode Mode)
}

func (f ObserverFuncs) ObserveWrite(name string, mode Mode) {
	if f.OnWrite != nil {
		f.OnWrite(name, mode)
	}
}

func (f ObserverFuncs) ObserveReset(name string, mode Mode) {
	if f.OnReset != nil {
		f.OnReset(name, mode)
	}
}

package kernel

// Nameserver registration/lookup requests, mirroring the original
// engine's NS_REQ_REGISTER/NS_REQ_WHOIS message shapes.
type nsRegisterReq struct{ name string }
type nsWhoisReq struct{ name string }

// RunNameserver is a task body that answers Register/WhoIs requests for
// the lifetime of the kernel. Re-registering a name already bound to
// another task silently rebinds it to the latest caller — last writer
// wins, with no notification to whoever registered it first.
func RunNameserver(h *Handle) {
	names := make(map[string]Tid)
	h.SetDestructor(func() {})

	for {
		from, msg := h.Receive()
		switch req := msg.(type) {
		case nsRegisterReq:
			names[req.name] = from
			h.Reply(from, struct{}{})
		case nsWhoisReq:
			tid, ok := names[req.name]
			if !ok {
				tid = NullTid
			}
			h.Reply(from, tid)
		default:
			h.Reply(from, struct{}{})
		}
	}
}

// Register binds name to h's own tid in the nameserver reachable at ns.
// Blocks until the nameserver processes the registration.
func Register(h *Handle, ns Tid, name string) {
	h.Send(ns, nsRegisterReq{name: name})
}

// WhoIs looks up name in the nameserver reachable at ns, returning
// NullTid if nothing is currently registered under that name.
func WhoIs(h *Handle, ns Tid, name string) Tid {
	return h.Send(ns, nsWhoisReq{name: name}).(Tid)
}

package kernel

import "container/heap"

// Delay/notify request shapes, mirroring the original engine's
// ts_req{TS_REQ_NOTIFY, TS_REQ_DELAY}.
type tsNotifyReq struct{}
type tsDelayReq struct{ ticks uint64 }

// delayDesc is one outstanding Sleep call, ordered by wake tick.
type delayDesc struct {
	tid      Tid
	wakeTick uint64
}

type delayHeap []delayDesc

func (h delayHeap) Len() int            { return len(h) }
func (h delayHeap) Less(i, j int) bool  { return h[i].wakeTick < h[j].wakeTick }
func (h delayHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *delayHeap) Push(x interface{}) { *h = append(*h, x.(delayDesc)) }
func (h *delayHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// tickNotifier repeatedly waits for tickEvent on bus and forwards a NOTIFY
// to its parent (the timeserver), exactly as the original tick_notifier
// child task forwards EVENT_60HZ_TICK.
func tickNotifier(bus *EventBus, tickEvent string) TaskFunc {
	return func(h *Handle) {
		for {
			bus.AwaitEvent(tickEvent)
			h.Send(h.ParentTid(), tsNotifyReq{})
		}
	}
}

// RunTimeserver is a task body answering Sleep requests against a logical
// tick clock advanced once per tickEvent publish on bus. A task that
// calls Sleep blocks (its Send doesn't return) until enough ticks have
// elapsed — the reply is withheld, not sent early and then waited on,
// mirroring the original's single queue of delay descriptors checked
// after every tick.
func RunTimeserver(bus *EventBus, tickEvent string) TaskFunc {
	return func(h *Handle) {
		var descs delayHeap
		heap.Init(&descs)
		var currTick uint64

		h.SetDestructor(func() {})
		h.Create(tickNotifier(bus, tickEvent))

		for {
			from, msg := h.Receive()
			switch req := msg.(type) {
			case tsNotifyReq:
				currTick++
				h.Reply(from, struct{}{})
			case tsDelayReq:
				heap.Push(&descs, delayDesc{tid: from, wakeTick: currTick + req.ticks})
				// Reply intentionally withheld until wakeTick elapses.
			default:
				h.Reply(from, struct{}{})
			}

			for descs.Len() > 0 && descs[0].wakeTick <= currTick {
				due := heap.Pop(&descs).(delayDesc)
				h.Reply(due.tid, struct{}{})
			}
		}
	}
}

// Sleep blocks h's calling task for ticks logical ticks of the timeserver
// reachable at ts.
func Sleep(h *Handle, ts Tid, ticks uint64) {
	h.Send(ts, tsDelayReq{ticks: ticks})
}

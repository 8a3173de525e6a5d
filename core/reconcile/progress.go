package reconcile

// ProgressFunc receives progress updates. It is called from the reducing
// goroutine and should return quickly.
type ProgressFunc func(current, total int, message string)

const defaultProgressEvery = 100

type progress struct {
	fn      ProgressFunc
	total   int
	every   int
	message string
}

func (o Options) progress(total int, message string) *progress {
	every := o.ProgressEvery
	if every <= 0 {
		every = defaultProgressEvery
	}
	return &progress{fn: o.Progress, total: total, every: every, message: message}
}

// step reports current out of total on the first record, every Nth record
// and the last one.
func (p *progress) step(current int) {
	if p.fn == nil {
		return
	}
	if current == 1 || current == p.total || current%p.every == 0 {
		p.fn(current, p.total, p.message)
	}
}

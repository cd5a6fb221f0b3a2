package navigation

// Request tracks one queued navigation call.
type Request struct {
	done  chan struct{}
	err   error
	thens []func(error)
}

func newRequest() *Request {
	return &Request{done: make(chan struct{})}
}

func failedRequest(err error) *Request {
	r := newRequest()
	r.complete(err)
	return r
}

// Done is closed when the transition finished or failed.
func (r *Request) Done() <-chan struct{} { return r.done }

// Err returns the failure, if any. It is only meaningful after Done.
func (r *Request) Err() error { return r.err }

// Finished reports whether Done is closed.
func (r *Request) Finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Then runs fn on the game loop once the request finished. If it already
// has, fn runs immediately.
func (r *Request) Then(fn func(error)) *Request {
	if r.Finished() {
		fn(r.err)
		return r
	}
	r.thens = append(r.thens, fn)
	return r
}

func (r *Request) complete(err error) {
	if r.Finished() {
		return
	}
	r.err = err
	close(r.done)
	thens := r.thens
	r.thens = nil
	for _, fn := range thens {
		fn(err)
	}
}

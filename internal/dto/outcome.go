package dto

// FetchOutcome is the result of one upstream fetch: either a payload or a failure message.
// The zero value is a failure with an empty message.
type FetchOutcome[T any] struct {
	data    T
	message string
	ok      bool
}

func Succeeded[T any](data T) FetchOutcome[T] {
	return FetchOutcome[T]{data: data, ok: true}
}

func Failed[T any](message string) FetchOutcome[T] {
	return FetchOutcome[T]{message: message}
}

// Match calls exactly one of the two branches.
func (o FetchOutcome[T]) Match(onSuccess func(T), onFailure func(string)) {
	if o.ok {
		onSuccess(o.data)
		return
	}
	onFailure(o.message)
}

// Result returns the payload and true on success, or the failure message and false.
func (o FetchOutcome[T]) Result() (T, string, bool) {
	return o.data, o.message, o.ok
}

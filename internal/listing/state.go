package listing

// Status is the lifecycle stage of one fetch target
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// FetchState is exactly one of Idle, Loading, Success(items) or Error(message).
// Seq identifies the request the state belongs to.
type FetchState[T any] struct {
	Status  Status
	Items   []T
	Message string
	Seq     uint64
	Query   ListQuery
}

func idleState[T any]() FetchState[T] {
	return FetchState[T]{Status: StatusIdle}
}

func loadingState[T any](seq uint64, q ListQuery) FetchState[T] {
	return FetchState[T]{Status: StatusLoading, Seq: seq, Query: q}
}

func successState[T any](seq uint64, q ListQuery, items []T) FetchState[T] {
	if items == nil {
		items = []T{}
	}
	return FetchState[T]{Status: StatusSuccess, Items: items, Seq: seq, Query: q}
}

func errorState[T any](seq uint64, q ListQuery, msg string) FetchState[T] {
	return FetchState[T]{Status: StatusError, Message: msg, Seq: seq, Query: q}
}

// Loading reports whether a request is outstanding
func (s FetchState[T]) Loading() bool { return s.Status == StatusLoading }

// Empty reports a successful fetch with no items
func (s FetchState[T]) Empty() bool { return s.Status == StatusSuccess && len(s.Items) == 0 }

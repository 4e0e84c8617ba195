package listing

// ViewKind is what a list area draws for a given FetchState
type ViewKind int

const (
	ViewIdle ViewKind = iota
	ViewSkeleton
	ViewError
	ViewEmpty
	ViewList
)

func (k ViewKind) String() string {
	switch k {
	case ViewIdle:
		return "idle"
	case ViewSkeleton:
		return "skeleton"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	case ViewList:
		return "list"
	default:
		return "unknown"
	}
}

const (
	DefaultPlaceholders = 3
	DefaultEmptyMessage = "No results found. Try adjusting your filters."
)

// View is the renderable projection of a FetchState
type View[T any] struct {
	Kind         ViewKind
	Items        []T
	Message      string
	Retry        bool
	Placeholders int
}

// RenderOptions tunes the skeleton size and the empty text
type RenderOptions struct {
	Placeholders int
	EmptyMessage string
}

// Render maps state to a View with default options
func Render[T any](state FetchState[T]) View[T] {
	return RenderWith(state, RenderOptions{})
}

// RenderWith maps state to a View. It is pure and never looks at a previous View.
func RenderWith[T any](state FetchState[T], opts RenderOptions) View[T] {
	if opts.Placeholders <= 0 {
		opts.Placeholders = DefaultPlaceholders
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = DefaultEmptyMessage
	}

	switch state.Status {
	case StatusLoading:
		return View[T]{Kind: ViewSkeleton, Placeholders: opts.Placeholders}
	case StatusError:
		return View[T]{Kind: ViewError, Message: state.Message, Retry: true}
	case StatusSuccess:
		if len(state.Items) == 0 {
			return View[T]{Kind: ViewEmpty, Message: opts.EmptyMessage}
		}
		return View[T]{Kind: ViewList, Items: state.Items}
	default:
		return View[T]{Kind: ViewIdle}
	}
}

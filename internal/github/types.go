package github

// Issue is the subset of the GitHub REST issue payload the catalog cares
// about. Untyped JSON stops here: everything past the gateway works with
// this struct or with domain.Product.
type Issue struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"`
	Labels    []Label `json:"labels"`
	CreatedAt string  `json:"created_at"`

	// PullRequest is non-nil when the "issue" is actually a pull
	// request; those never become products.
	PullRequest *struct {
		URL string `json:"url"`
	} `json:"pull_request,omitempty"`
}

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// IsPullRequest reports whether this issue is a pull request in disguise.
func (i Issue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// LabelNames returns the label names in API order.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// ListOptions controls an issue listing.
type ListOptions struct {
	// Label filters to issues carrying this label; empty means all.
	Label string
	// State is "open", "closed" or "all". The catalog uses "all" so
	// products stay visible after their issue is closed.
	State string
	// PerPage is clamped to the API's 1..100 range; zero means 100.
	PerPage int
}

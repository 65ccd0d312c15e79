// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the break-even search over a single assumption.
type Summary struct {
	Field           string   `json:"field"`
	Label           string   `json:"label"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	NetMargin       float64  `json:"netMargin"` // monthly net margin at Value
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

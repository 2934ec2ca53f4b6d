// Package spec defines the parsed form of a project specification text:
// the header fields, the ordered module and function blocks, and the
// change records produced when two snapshots are compared.
package spec

// Status tags a function's generation state. Parsing always yields
// StatusEmpty; later pipeline stages own the transitions.
type Status string

const (
	// StatusEmpty marks a function with no generated output yet
	StatusEmpty Status = "empty"
	// StatusGenerated marks a function whose output is up to date
	StatusGenerated Status = "generated"
	// StatusStale marks a function whose dependencies changed after its
	// output was generated
	StatusStale Status = "stale"
)

// ChangeType classifies how a function differs between two snapshots
type ChangeType string

const (
	// ChangeInterface means the declared inputs or outputs changed
	ChangeInterface ChangeType = "interface"
	// ChangeBehavior means only the behavior text changed
	ChangeBehavior ChangeType = "behavior"
	// ChangeNone means no difference after whitespace normalization
	ChangeNone ChangeType = "none"
)

// ProjectSpec is the tree produced by one parse of one text snapshot.
// The parser returns a fresh tree per parse; later stages that annotate
// functions (status tags) do so in place on their own parse's tree.
//
// Header fields are only populated from lines seen before the first
// module block; once a module starts, header parsing is closed for the
// rest of the document.
type ProjectSpec struct {
	Language     string `json:"language" yaml:"language"`
	Framework    string `json:"framework" yaml:"framework"`
	Database     string `json:"database,omitempty" yaml:"database,omitempty"`
	Conventions  string `json:"conventions" yaml:"conventions"`
	Purpose      string `json:"purpose" yaml:"purpose"`
	Environment  string `json:"environment,omitempty" yaml:"environment,omitempty"`
	GlobalState  string `json:"globalState,omitempty" yaml:"globalState,omitempty"`
	ExternalDeps string `json:"externalDependencies,omitempty" yaml:"externalDependencies,omitempty"`

	Modules []*Module `json:"modules" yaml:"modules"`
}

// Module is a named group of functions plus a free-form description.
// Name is everything before the first " - " separator on the start line;
// the description is everything after it.
type Module struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Functions   []*Function `json:"functions" yaml:"functions"`
}

// Function is one function block: free-form inputs/outputs/behavior text
// plus the dependency references extracted from the behavior.
type Function struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Inputs   string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs  string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Behavior string `json:"behavior,omitempty" yaml:"behavior,omitempty"`

	// Dependencies holds the bracketed reference strings found in the
	// behavior text, deduplicated in first-occurrence order. These are
	// raw names, not identifiers; resolution happens in the graph layer.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// OutputPath is set by the save step once code has been written for
	// this function. Empty until then.
	OutputPath string `json:"outputPath,omitempty" yaml:"outputPath,omitempty"`

	Status Status `json:"status" yaml:"status"`
}

// Change records one classified difference for a function present in
// both of two compared snapshots.
type Change struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	ChangeType ChangeType `json:"changeType" yaml:"changeType"`
}

// FunctionsByID returns a lookup from identifier to function across all
// modules, in no particular order.
func (s *ProjectSpec) FunctionsByID() map[string]*Function {
	fns := make(map[string]*Function)
	for _, m := range s.Modules {
		for _, fn := range m.Functions {
			fns[fn.ID] = fn
		}
	}
	return fns
}

// FunctionCount returns the total number of functions across all modules.
func (s *ProjectSpec) FunctionCount() int {
	n := 0
	for _, m := range s.Modules {
		n += len(m.Functions)
	}
	return n
}

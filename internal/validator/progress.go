package validator

// Status marks how a progress step should be presented. It carries no
// semantic weight for the verdict; the console layer maps it to a glyph.
type Status int

const (
	// StatusOK marks a check that found what it was looking for.
	StatusOK Status = iota
	// StatusNote marks a neutral observation (e.g. an absent collection).
	StatusNote
)

// Progress receives check-by-check notifications as validation runs, so
// the console can print them incrementally the way the report interleaves
// with finding accumulation.
type Progress interface {
	// Sectionf starts a new report section, e.g. "Template 1:".
	Sectionf(format string, args ...any)
	// Stepf reports one completed check within the current section.
	Stepf(status Status, format string, args ...any)
}

type nopProgress struct{}

func (nopProgress) Sectionf(string, ...any) {}

func (nopProgress) Stepf(Status, string, ...any) {}

// NopProgress returns a Progress that discards everything. Used for
// structured output modes and tests.
func NopProgress() Progress { return nopProgress{} }

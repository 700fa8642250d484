package model

import (
	"errors"
	"fmt"
	"strings"
)

// Target-sample resolution errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers (the CLI and the
// GUI wrapper) to use errors.Is() for programmatic handling while still
// providing human-readable messages.
var (
	// ErrNoSamples is returned when the database's sample table is empty.
	// An OpenCRAVAT run always registers at least one sample, so this
	// usually means the wrong file was supplied.
	ErrNoSamples = errors.New("no samples found in database")

	// ErrMissingTargetSample is returned when a duo/trio database is opened
	// without designating a target (proband) sample. Zygosity display is
	// ambiguous without one, so the build must not proceed.
	ErrMissingTargetSample = errors.New("multiple samples present: a target sample must be specified with --target-sample")

	// ErrInvalidTargetSample is returned when the designated target sample
	// is not among the samples registered in the database.
	ErrInvalidTargetSample = errors.New("target sample not found in database")
)

// StudyKind describes how many related individuals were sequenced together.
type StudyKind int

const (
	// StudySingle is a proband-only study.
	StudySingle StudyKind = iota + 1

	// StudyDuo is a two-sample family study (proband + one parent).
	StudyDuo

	// StudyTrio is a three-sample family study (proband + both parents).
	StudyTrio
)

// String returns a human-readable study kind.
func (k StudyKind) String() string {
	switch k {
	case StudySingle:
		return "single"
	case StudyDuo:
		return "duo"
	case StudyTrio:
		return "trio"
	default:
		return fmt.Sprintf("family(%d)", int(k))
	}
}

// SampleSet is the set of sample identifiers present in a database, with the
// resolved target sample for multi-sample studies.
//
// Design decision: Sample resolution lives here as a small discriminated
// abstraction instead of conditional branching scattered through rendering.
// Renderers only ever see the already-resolved Target.
type SampleSet struct {
	// Samples holds all sample identifiers in database order.
	Samples []string

	// Target is the designated proband sample. Always a member of Samples.
	Target string
}

// NewSampleSet validates the sample list against the requested target and
// returns the resolved set.
//
// Rules:
//   - zero samples is an error (ErrNoSamples)
//   - one sample: the target defaults to that sample; if a target was
//     requested it must still match
//   - two or more samples: a target is required (ErrMissingTargetSample)
//     and must be a member (ErrInvalidTargetSample)
func NewSampleSet(samples []string, target string) (*SampleSet, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	target = strings.TrimSpace(target)

	if target == "" {
		if len(samples) > 1 {
			return nil, fmt.Errorf("%w (found %d samples: %s)",
				ErrMissingTargetSample, len(samples), strings.Join(samples, ", "))
		}
		return &SampleSet{Samples: samples, Target: samples[0]}, nil
	}

	for _, s := range samples {
		if s == target {
			return &SampleSet{Samples: samples, Target: target}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)",
		ErrInvalidTargetSample, target, strings.Join(samples, ", "))
}

// Kind returns the study layout implied by the number of samples.
func (s *SampleSet) Kind() StudyKind {
	return StudyKind(len(s.Samples))
}

// Multi reports whether the study has more than one sample.
func (s *SampleSet) Multi() bool {
	return len(s.Samples) > 1
}

// Others returns the non-target samples in database order.
// For a single study the result is empty.
func (s *SampleSet) Others() []string {
	var others []string
	for _, sample := range s.Samples {
		if sample != s.Target {
			others = append(others, sample)
		}
	}
	return others
}

// DisplayID returns the short form of a sample identifier used in report
// text. Laboratory specimen IDs carry a dotted suffix (e.g. "24-1234.wgs")
// that is dropped for display.
func DisplayID(sample string) string {
	if i := strings.IndexByte(sample, '.'); i > 0 {
		return sample[:i]
	}
	return sample
}

package config

// Profile holds laboratory boilerplate rendered into every report but not
// stored in the annotation database: who issues the report and how the
// sequencing was performed.
type Profile struct {
	// Clinician is the reporting clinical bioinformatician's name.
	Clinician string `yaml:"clinician,omitempty"`

	// Laboratory is the issuing laboratory's name.
	Laboratory string `yaml:"laboratory,omitempty"`

	// Format is the default output format (markdown, text or json).
	// CLI flags take precedence.
	Format string `yaml:"format,omitempty"`

	// Sequencing describes the assay for the technical section.
	Sequencing Sequencing `yaml:"sequencing,omitempty"`
}

// Sequencing is the technical-characteristics block of the report.
// Unset fields render as fill-in underscores, matching the paper template
// the laboratory signs off on.
type Sequencing struct {
	// Method is the assay name, e.g. "whole genome sequencing".
	Method string `yaml:"method,omitempty"`

	// MeanDepth is the mean genome coverage after sequencing, e.g. "30x".
	MeanDepth string `yaml:"meanDepth,omitempty"`

	// TotalBases is the guaranteed sequencing yield, e.g. "at least 90 Gb".
	TotalBases string `yaml:"totalBases,omitempty"`

	// ReadType is the library read layout, e.g. "paired-end".
	ReadType string `yaml:"readType,omitempty"`

	// ReadLength is the read length in bases, e.g. "150".
	ReadLength string `yaml:"readLength,omitempty"`

	// QualityCriteria lists the run acceptance criteria, one per line.
	QualityCriteria []string `yaml:"qualityCriteria,omitempty"`
}

// DefaultProfile returns the profile used when no profile file is found.
// The sequencing block carries the laboratory's standard WGS assay; header
// fields stay empty and render as fill-ins.
func DefaultProfile() *Profile {
	return &Profile{
		Sequencing: Sequencing{
			Method:     "whole genome sequencing",
			MeanDepth:  "_x",
			TotalBases: "at least 90 billion bases",
			ReadType:   "paired-end",
			ReadLength: "150",
			QualityCriteria: []string{
				"reads at Q20: at least 90% of all sequenced reads",
				"reads at Q30: at least 80% of all sequenced reads",
			},
		},
	}
}

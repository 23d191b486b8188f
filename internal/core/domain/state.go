package domain

// FirstStep and LastStep bound the linear wizard.
const (
	FirstStep = 1
	LastStep  = 6
)

// ApplyOptions tunes a single Apply call.
type ApplyOptions struct {
	// SkipValidation merges the patch without revalidating the changed fields.
	SkipValidation bool `json:"skipValidation"`
}

// WizardState is the read model the presentation layer renders from.
type WizardState struct {
	Step            int               `json:"step"`
	Draft           Draft             `json:"draft"`
	Errors          map[string]string `json:"errors"`
	Warnings        map[string]string `json:"warnings"`
	CompletionScore int               `json:"completionScore"`
	PublishReady    bool              `json:"publishReady"`
	Dirty           bool              `json:"dirty"`
}

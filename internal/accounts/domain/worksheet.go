package domain

// AwardStatus marks whether a worksheet's work has been awarded.
type AwardStatus string

const (
	Awarded    AwardStatus = "awarded"
	NotAwarded AwardStatus = "not awarded"
)

// ParseAwardStatus maps a string literal to an AwardStatus.
func ParseAwardStatus(s string) (AwardStatus, bool) {
	switch AwardStatus(s) {
	case Awarded, NotAwarded:
		return AwardStatus(s), true
	}
	return "", false
}

func (s AwardStatus) String() string { return string(s) }

// WorkStatus tracks execution progress of an awarded worksheet.
type WorkStatus string

const (
	WorkNotStarted WorkStatus = "not started"
	WorkInProgress WorkStatus = "in progress"
	WorkCompleted  WorkStatus = "completed"
)

// ParseWorkStatus maps a string literal to a WorkStatus.
func ParseWorkStatus(s string) (WorkStatus, bool) {
	switch WorkStatus(s) {
	case WorkNotStarted, WorkInProgress, WorkCompleted:
		return WorkStatus(s), true
	}
	return "", false
}

func (s WorkStatus) String() string { return string(s) }

// Worksheet is keyed by WorkReference. The Award fields are present iff
// AwardStatus is Awarded.
type Worksheet struct {
	WorkReference string
	Description   string
	TargetType    string
	AwardStatus   AwardStatus

	Award AwardDetails
}

// AwardDetails are the attributes an awarded worksheet carries. EntityAccount
// is the username of the partner account assigned to the work.
type AwardDetails struct {
	AwardDate              string
	ExpectedStartDate      string
	ExpectedCompletionDate string
	EntityAccount          string
	AwardingEntity         string
	CompanyTaxID           string
	WorkStatus             WorkStatus
	Notes                  string
}

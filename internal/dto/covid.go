package dto

import "time"

// RawRecord is one decoded upstream daily record before sanitization.
// DateChecked is nil when the upstream value was missing or could not be parsed.
type RawRecord struct {
	DateChecked      *time.Time
	PositiveIncrease int
	NegativeIncrease int
	DeathIncrease    int
	State            string
}

// NationwideID selects the national series wherever a region id is expected.
const NationwideID = "all"

// FeedStatus mirrors the lifecycle of one upstream feed.
type FeedStatus string

const (
	FeedEmpty   FeedStatus = "empty"
	FeedLoading FeedStatus = "loading"
	FeedNoData  FeedStatus = "noData"
	FeedFailure FeedStatus = "failure"
	FeedSuccess FeedStatus = "success"
)

const (
	defaultFailureMessage = "There was an Error"
	defaultNoDataMessage  = "There is No Data"
)

type FeedState struct {
	Status    FeedStatus `json:"status"`
	Message   string     `json:"message,omitempty"`
	Records   int        `json:"records"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FailureState builds a failure state, falling back to a generic message.
func FailureState(message string, at time.Time) FeedState {
	if message == "" {
		message = defaultFailureMessage
	}
	return FeedState{Status: FeedFailure, Message: message, UpdatedAt: at}
}

func NoDataState(at time.Time) FeedState {
	return FeedState{Status: FeedNoData, Message: defaultNoDataMessage, UpdatedAt: at}
}

type TrackerStatus struct {
	National FeedState `json:"national"`
	Regions  FeedState `json:"regions"`
}

package models

// HistoryRequest bounds the trailing window of the history endpoint to the
// fetch window itself.
type HistoryRequest struct {
	Days int `query:"days" default:"730" validate:"min=1,max=730"`
}

package model

// Answer is the response to a question asked about a completed job.
type Answer struct {
	Answer             string   `json:"answer"`
	RelevantTimestamps []string `json:"relevant_timestamps"`
	RelevantFrames     []string `json:"relevant_frames"`
}

package api

import "github.com/samcharles93/stdhep/pkg/stdhep"

// SampleResult is the outcome of decoding one uploaded STDHEP file.
type SampleResult struct {
	ID        string          `json:"id"`
	Object    string          `json:"object"`
	CreatedAt int64           `json:"created_at"`
	Size      int64           `json:"size"`
	Sample    stdhep.Sample   `json:"sample"`
	Keep      int             `json:"keep"`
	Skip      int             `json:"skip"`
	Reasons   map[string]int  `json:"skip_reasons,omitempty"`
	Events    []*stdhep.Event `json:"events,omitempty"`
	Error     *ResponseError  `json:"error,omitempty"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type DeleteSampleResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type SampleList struct {
	Object string   `json:"object"`
	Data   []string `json:"data"`
}

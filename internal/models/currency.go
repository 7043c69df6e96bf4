package models

// Currency is the storage representation of a row in the currencies table.
type Currency struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	FullName string `json:"fullName"`
	Sign     string `json:"sign"`
}

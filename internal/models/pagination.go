package models

// Page holds skip/limit listing parameters.
type Page struct {
	Skip  int
	Limit int
}

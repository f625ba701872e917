package entity

// Counters hold the last identifier issued per collection.
type Counters struct {
	Product  int `json:"product"`
	Customer int `json:"customer"`
	Sale     int `json:"sale"`
}

// Snapshot is the whole persisted state tree.
type Snapshot struct {
	Products      []*Product      `json:"products"`
	Customers     []*Customer     `json:"customers"`
	Sales         []*Sale         `json:"sales"`
	Notifications []*Notification `json:"notifications"`
	Counters      Counters        `json:"counters"`
}

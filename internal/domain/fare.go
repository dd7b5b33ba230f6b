package domain

// Fare computes seatCount x perSeatFare in whole-rupee integer arithmetic.
// seatCount must be at least 1.
func Fare(seatCount int, perSeatFare int64) (int64, error) {
	if seatCount < 1 {
		return 0, ValidationError{Field: "seatCount", Msg: "must be at least 1"}
	}
	if perSeatFare < 0 {
		return 0, ValidationError{Field: "perSeatFare", Msg: "must not be negative"}
	}
	return int64(seatCount) * perSeatFare, nil
}

// Charges are the additive payment components on top of the base amount.
// Each defaults to zero.
type Charges struct {
	Tax      int64 `json:"taxAmount"`
	Service  int64 `json:"serviceCharge"`
	Delivery int64 `json:"deliveryCharge"`
}

// Total returns amount plus all charge components.
func (c Charges) Total(amount int64) int64 {
	return amount + c.Tax + c.Service + c.Delivery
}

package domain

type PaymentStatus string

const (
	PaymentStatusSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusDeclined   PaymentStatus = "DECLINED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

type PaymentRequest struct {
	TopicName     string  `json:"topicName"`
	CorrelatorID  int     `json:"correlatorId"`
	PaymentAmount float64 `json:"paymentAmount"`
	Email         string  `json:"email"`
	CreditCard    string  `json:"creditCard"`
	CVC           string  `json:"cvc"`
}

type PaymentResponse struct {
	TopicName    string        `json:"topicName"`
	CorrelatorID int           `json:"correlatorId"`
	Status       PaymentStatus `json:"status"`
}

// Succeeded is the step 2 success predicate
func (r PaymentResponse) Succeeded() bool {
	return r.Status == PaymentStatusSuccessful
}

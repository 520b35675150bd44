package domain

// LineItem — позиция чека, уходящая шлюзу вместе с запросом токена.
type LineItem struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// CustomerDetails — данные покупателя для шлюза.
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ChargeRequest — запрос токена оплаты у шлюза.
type ChargeRequest struct {
	OrderID     string
	Amount      int64
	Customer    CustomerDetails
	Items       []LineItem
	PaymentType string
}

// ChargeToken — непрозрачный токен hosted-потока оплаты.
type ChargeToken struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

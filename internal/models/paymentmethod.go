package models

import "github.com/shopspring/decimal"

// Виды методов оплаты.
const (
	MethodCard   = "card"
	MethodCash   = "cash"
	MethodWallet = "wallet"
)

// PaymentMethod представляет сохранённый метод оплаты пользователя.
// Кошелёк (wallet) — единственный на пользователя и в списках методов
// не показывается, его баланс выводится отдельно.
type PaymentMethod struct {
	ID           int             // Идентификатор метода
	Kind         string          // card, cash или wallet
	MaskedNumber string          // Маскированный номер карты, только для card
	HolderName   string          // Имя владельца карты, только для card
	Expiry       string          // Срок действия MM/YY, только для card
	Balance      decimal.Decimal // Собственный баланс метода
}

// DummyCardMethod используется для приёма формы добавления карты.
// Номер проверяется после удаления пробелов: ровно 16 цифр.
type DummyCardMethod struct {
	Number string `json:"numero" validate:"required"`
	Holder string `json:"titular" validate:"required"`
	Expiry string `json:"vencimiento" validate:"required"`
}

// DummyCashBalance используется для приёма новой суммы наличного метода.
type DummyCashBalance struct {
	Balance string `json:"balance" validate:"required"`
}

// DummyRecharge используется для приёма формы пополнения кошелька
// с выбранного метода оплаты.
type DummyRecharge struct {
	MethodID int    `json:"payment_method_id" validate:"required,gt=0"`
	Amount   string `json:"amount" validate:"required"`
}

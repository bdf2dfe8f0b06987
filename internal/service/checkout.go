package service

import "github.com/pianao-store/internal/constants"

// CheckoutState 结算向导状态：terms → address → confirm
type CheckoutState struct {
	Step          string          `json:"step"`
	TermsAccepted bool            `json:"terms_accepted"`
	Address       ShippingAddress `json:"address"`
}

// NewCheckoutState 初始状态
func NewCheckoutState() CheckoutState {
	return CheckoutState{Step: constants.CheckoutStepTerms}
}

// AcceptTerms 同意条款后进入地址填写，未同意时步骤保持不变
func (s *CheckoutState) AcceptTerms(accepted bool) error {
	if s.Step != constants.CheckoutStepTerms {
		return ErrCheckoutStep
	}
	if !accepted {
		return ErrTermsNotAccepted
	}
	s.TermsAccepted = true
	s.Step = constants.CheckoutStepAddress
	return nil
}

// SubmitAddress 地址必填项齐全后进入确认
func (s *CheckoutState) SubmitAddress(address ShippingAddress) error {
	if s.Step != constants.CheckoutStepAddress {
		return ErrCheckoutStep
	}
	if err := address.Validate(); err != nil {
		return err
	}
	s.Address = address.Normalize()
	s.Step = constants.CheckoutStepConfirm
	return nil
}

// Back 返回上一步，在第一步时无变化
func (s *CheckoutState) Back() {
	switch s.Step {
	case constants.CheckoutStepConfirm:
		s.Step = constants.CheckoutStepAddress
	case constants.CheckoutStepAddress:
		s.Step = constants.CheckoutStepTerms
	}
}

// ReadyToPlace 是否可以下单
func (s *CheckoutState) ReadyToPlace() bool {
	return s.Step == constants.CheckoutStepConfirm && s.TermsAccepted && s.Address.Validate() == nil
}

func isCheckoutStepValid(step string) bool {
	switch step {
	case constants.CheckoutStepTerms, constants.CheckoutStepAddress, constants.CheckoutStepConfirm:
		return true
	}
	return false
}

package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeMissingEmail      = "MISSING_EMAIL"
	ErrCodeMissingName       = "MISSING_NAME"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeCustomerLookup    = "CUSTOMER_LOOKUP_FAILED"
	ErrCodePaymentFailed     = "PAYMENT_FAILED"
	ErrCodeOrderInsert       = "ORDER_INSERT_FAILED"
	ErrCodeOrderItemsInsert  = "ORDER_ITEMS_INSERT_FAILED"
	ErrCodeStockUpdate       = "STOCK_UPDATE_FAILED"
	ErrCodeMissingContext    = "MISSING_PAYMENT_CONTEXT"
	ErrCodeMissingToken      = "MISSING_CONFIRMATION_TOKEN"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED_RECONCILIATION"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a typed, recoverable business error. The assistant and the
// reconciliation flow branch on Code; Message is what the user sees.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages stay in Korean: they are conversational
// replies, not log lines.
var (
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "상품을 찾을 수 없어요")
	ErrMissingEmail     = NewDomainError(ErrCodeMissingEmail, "이메일을 알려주세요")
	ErrMissingName      = NewDomainError(ErrCodeMissingName, "이름을 알려주세요")
	ErrCustomerLookup   = NewDomainError(ErrCodeCustomerLookup, "고객 정보 조회 중 오류가 발생했습니다.")
	ErrCustomerSave     = NewDomainError(ErrCodeCustomerLookup, "고객 정보 저장 중 오류가 발생했습니다.")
	ErrPaymentFailed    = NewDomainError(ErrCodePaymentFailed, "결제가 취소되었습니다")
	ErrMissingContext   = NewDomainError(ErrCodeMissingContext, "결제 정보가 없습니다. 다시 시도해주세요.")
	ErrMissingToken     = NewDomainError(ErrCodeMissingToken, "결제 확인 키가 없습니다. 다시 시도해주세요.")
	ErrUnauthenticated  = NewDomainError(ErrCodeUnauthenticated, "로그인 정보가 없습니다. 다시 로그인 후 시도해주세요.")
	ErrOrderInsert      = NewDomainError(ErrCodeOrderInsert, "주문 내역 저장에 실패했습니다. 고객센터로 문의해주세요.")
	ErrOrderItemsInsert = NewDomainError(ErrCodeOrderItemsInsert, "주문 상품 저장에 실패했습니다. 고객센터로 문의해주세요.")
)

// NewInsufficientStockError reports how much stock is actually left.
func NewInsufficientStockError(stock int) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock, fmt.Sprintf("재고가 부족해요 (현재 재고: %d개)", stock))
}

// ErrorCode extracts the domain error code from err, or empty string.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

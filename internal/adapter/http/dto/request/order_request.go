package request

type CheckoutRequest struct {
	Notes string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

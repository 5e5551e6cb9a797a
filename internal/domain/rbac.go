package domain

// EnforceRequest asks whether Role may perform Action on Resource. It lives
// here so middleware and rbac do not import each other.
type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

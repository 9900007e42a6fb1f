package entity

import "time"

// FaceVectorDim is the dimensionality of the dlib face embedding space.
const FaceVectorDim = 128

// FaceVector is an in-memory face embedding. It is never persisted in
// plaintext: the only durable form is the encrypted BiometricTemplate.
type FaceVector []float64

func (v FaceVector) ValidDim() bool {
	return len(v) == FaceVectorDim
}

// BiometricTemplate is one employee's enrolled face encoding at rest.
// CipherText carries the AES-GCM payload (auth tag included), Nonce the
// per-encryption IV. A template is replaced wholesale on re-enrollment,
// never mutated field by field.
type BiometricTemplate struct {
	EmployeeID int64
	CipherText []byte
	Nonce      []byte
	EnrolledAt time.Time
}

// IdentificationResult is the outcome of a 1:N sweep over the vault.
// EmployeeID is only meaningful when Matched is true.
type IdentificationResult struct {
	EmployeeID int64
	Confidence float64
	Matched    bool
}

// Package recognizer extracts face embeddings with dlib via go-face.
// It is the only component that sees raw images; everything downstream
// works on 128-dimension vectors.
package recognizer

import (
	"context"
	"fmt"
	"sync"

	"github.com/Kagami/go-face"

	"github.com/facegate/facegate/internal/entity"
)

type Client struct {
	// dlib's recognizer is not safe for concurrent use; extractions are
	// serialized. Identification latency is dominated by the vault sweep,
	// not this lock.
	mu  sync.Mutex
	rec *face.Recognizer
}

// New loads the dlib models from modelsDir. Model loading is expensive,
// so one Client is built at startup and shared for the process lifetime.
func New(modelsDir string) (*Client, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("load face models: %w", err)
	}

	return &Client{rec: rec}, nil
}

// Extract produces the embedding for the single face in a JPEG image.
// Zero faces and multiple faces are distinct errors: a frame with two
// people in it is rejected, never resolved to "the larger face".
//
// The dlib call cannot be interrupted, so cancellation is handled by
// letting the call finish in its goroutine and returning ctx.Err() to
// the caller; the stale result is discarded.
func (c *Client) Extract(ctx context.Context, image []byte) (entity.FaceVector, error) {
	type result struct {
		vec entity.FaceVector
		err error
	}

	ch := make(chan result, 1)

	go func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		faces, err := c.rec.Recognize(image)
		if err != nil {
			ch <- result{err: fmt.Errorf("%w: %s", entity.ErrExtraction, err)}
			return
		}

		switch len(faces) {
		case 0:
			ch <- result{err: entity.ErrNoFace}
		case 1:
			ch <- result{vec: descriptorToVector(faces[0].Descriptor)}
		default:
			ch <- result{err: entity.ErrMultipleFaces}
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.vec, res.err
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rec.Close()
}

func descriptorToVector(d face.Descriptor) entity.FaceVector {
	vec := make(entity.FaceVector, len(d))
	for i, f := range d {
		vec[i] = float64(f)
	}

	return vec
}

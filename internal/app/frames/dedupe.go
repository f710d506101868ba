package frames

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/corona10/goimagehash"
)

// Deduplicate drops near-duplicate frames with a single left-to-right pass.
// The first frame is always kept. Every subsequent frame is fingerprinted
// and compared against the fingerprint of the last KEPT frame; it is retained
// only when the bit distance exceeds threshold, at which point it becomes the
// new reference. Comparison is never against a global set, so a frame that
// matches an older kept frame can still be retained.
func Deduplicate(input []Frame, threshold int) ([]Frame, error) {
	if len(input) == 0 {
		return []Frame{}, nil
	}

	kept := []Frame{input[0]}
	lastHash, err := fingerprint(input[0].Path)
	if err != nil {
		return nil, err
	}

	for _, frame := range input[1:] {
		currentHash, err := fingerprint(frame.Path)
		if err != nil {
			return nil, err
		}

		distance, err := lastHash.Distance(currentHash)
		if err != nil {
			return nil, fmt.Errorf("hash distance for %s: %v", frame.Path, err)
		}
		if distance > threshold {
			kept = append(kept, frame)
			lastHash = currentHash
		}
	}

	return kept, nil
}

func fingerprint(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame %s: %v", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %v", path, err)
	}

	hash, err := goimagehash.AverageHash(img)
	if err != nil {
		return nil, fmt.Errorf("hash frame %s: %v", path, err)
	}
	return hash, nil
}

// file: internals/features/attendance/face/service/matcher.go
//
// Matcher numerik murni: rata-rata beberapa capture jadi satu profil referensi,
// dan bandingkan embedding live dengan referensi via jarak Euclidean.
// Deterministik, tanpa side effect — aman dipanggil paralel antar request.
package service

import (
	"errors"
	"fmt"
	"math"

	model "hadirku_backend/internals/features/attendance/face/model"
)

// MinEnrollmentCaptures: profil dibentuk dari minimal 3 capture.
const MinEnrollmentCaptures = 3

var (
	ErrInsufficientCaptures = errors.New("jumlah capture kurang dari minimum pendaftaran")
	ErrInvalidDescriptor    = errors.New("dimensi descriptor tidak sesuai")
)

// AverageDescriptors menghitung mean per-komponen dari ≥3 capture.
// Semua capture harus persis FaceDescriptorDim.
func AverageDescriptors(captures [][]float64) ([]float64, error) {
	if len(captures) < MinEnrollmentCaptures {
		return nil, fmt.Errorf("%w: dapat %d, butuh %d", ErrInsufficientCaptures, len(captures), MinEnrollmentCaptures)
	}
	for i, cap := range captures {
		if len(cap) != model.FaceDescriptorDim {
			return nil, fmt.Errorf("%w: capture[%d] berdimensi %d, harus %d", ErrInvalidDescriptor, i, len(cap), model.FaceDescriptorDim)
		}
	}

	avg := make([]float64, model.FaceDescriptorDim)
	for _, cap := range captures {
		for i, v := range cap {
			avg[i] += v
		}
	}
	n := float64(len(captures))
	for i := range avg {
		avg[i] /= n
	}
	return avg, nil
}

// MatchResult: hasil perbandingan satu probe terhadap referensi.
type MatchResult struct {
	Distance float64 `json:"distance"`
	IsMatch  bool    `json:"is_match"`
}

// MatchScore membandingkan referensi vs probe (keduanya FaceDescriptorDim).
// threshold dikonfigurasi caller (configs.FaceMatchThreshold), bukan konstanta.
func MatchScore(reference, probe []float64, threshold float64) (MatchResult, error) {
	if len(reference) != model.FaceDescriptorDim {
		return MatchResult{}, fmt.Errorf("%w: referensi berdimensi %d", ErrInvalidDescriptor, len(reference))
	}
	if len(probe) != model.FaceDescriptorDim {
		return MatchResult{}, fmt.Errorf("%w: probe berdimensi %d", ErrInvalidDescriptor, len(probe))
	}

	var sum float64
	for i := range reference {
		d := reference[i] - probe[i]
		sum += d * d
	}
	dist := math.Sqrt(sum)

	return MatchResult{
		Distance: dist,
		IsMatch:  dist <= threshold,
	}, nil
}

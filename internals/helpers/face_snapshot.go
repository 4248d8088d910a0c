// file: internals/helpers/face_snapshot.go
//
// Normalisasi snapshot wajah saat pendaftaran: decode → resize → WebP,
// lalu upload ke Supabase storage. Hasilnya dipakai sebagai
// face_profile_primary_image_ref (bukan embedding — embedding dikirim terpisah).
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	snapshotMaxDim      = 512 // px sisi terpanjang
	snapshotWebPQuality = 80
)

// ConvertSnapshotToWebP: decode JPEG/PNG, fit ke 512px, encode WebP lossy.
func ConvertSnapshotToWebP(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	raw := new(bytes.Buffer)
	if _, err := io.Copy(raw, src); err != nil {
		return nil, fmt.Errorf("gagal membaca file gambar: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("format gambar tidak dikenali: %w", err)
	}

	// Downscale hanya kalau lebih besar dari target
	b := img.Bounds()
	if b.Dx() > snapshotMaxDim || b.Dy() > snapshotMaxDim {
		img = imaging.Fit(img, snapshotMaxDim, snapshotMaxDim, imaging.Lanczos)
	}

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Lossless: false, Quality: snapshotWebPQuality}); err != nil {
		return nil, fmt.Errorf("gagal encode webp: %w", err)
	}
	return out.Bytes(), nil
}

// UploadFaceSnapshot: konversi + upload, return public URL untuk disimpan
// sebagai primary_image_ref.
func UploadFaceSnapshot(fileHeader *multipart.FileHeader) (string, error) {
	data, err := ConvertSnapshotToWebP(fileHeader)
	if err != nil {
		return "", err
	}

	filename := generateUniqueFilename("face-snapshots", fileHeader.Filename) + ".webp"
	if err := uploadToSupabase("image", filename, "image/webp", bytes.NewBuffer(data)); err != nil {
		return "", fmt.Errorf("upload snapshot gagal: %w", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/image/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		url.PathEscape(filename),
	), nil
}

// ✅ Buat nama unik
func sanitizeFilename(filename string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func generateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}

func uploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) error {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return fmt.Errorf("gagal membuat request upload: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
	if err != nil {
		return fmt.Errorf("gagal mengirim request upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

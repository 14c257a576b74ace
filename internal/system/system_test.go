package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}

func TestFrameBudget(t *testing.T) {
	tests := []struct {
		name       string
		frameBytes uint64
		workers    int
		maxWant    int
	}{
		{"unknown size", 0, 6, 6},
		{"small frames", 1920 * 1080 * 4, 4, 4},
		{"no workers", 1024, 0, 1},
		{"huge frames", 1 << 62, 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrameBudget(tt.frameBytes, tt.workers)
			if got < 1 || got > tt.maxWant {
				t.Errorf("Expected budget in [1, %d], got %d", tt.maxWant, got)
			}
		})
	}
}

func TestFindLatestFile(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.pdf", "b.PDF", "c.png", "d.pdf"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}
	os.Mkdir(filepath.Join(dir, "z.pdf"), 0755)

	latest, err := FindLatestFile(dir, ".pdf")
	if err != nil {
		t.Fatalf("FindLatestFile failed: %v", err)
	}
	if filepath.Base(latest) != "d.pdf" {
		t.Errorf("Expected d.pdf, got %s", latest)
	}

	latest, err = FindLatestFile(dir, ".png", ".jpg")
	if err != nil {
		t.Fatalf("FindLatestFile failed: %v", err)
	}
	if filepath.Base(latest) != "c.png" {
		t.Errorf("Expected c.png, got %s", latest)
	}

	if _, err := FindLatestFile(dir, ".webp"); err == nil {
		t.Error("Expected error when nothing matches")
	}
}

func TestImagePool(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 32, 16)

	img := pool.Get(rect)
	if img.Rect != rect || len(img.Pix) != 32*16*4 {
		t.Fatalf("Unexpected buffer: rect=%v len=%d", img.Rect, len(img.Pix))
	}
	pool.Put(img)
	pool.Put(nil)

	// Foreign sizes are ignored rather than pooled under the wrong key.
	pool.Put(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	if got := pool.Get(image.Rect(0, 0, 3, 3)); got.Rect.Dx() != 3 {
		t.Errorf("Expected 3px wide buffer, got %v", got.Rect)
	}
}

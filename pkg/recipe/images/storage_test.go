package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatalf("Failed to encode JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat(encodePNG(t))
	if err != nil {
		t.Fatalf("Expected PNG to be detected: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected format 'png', got %q", format)
	}

	format, err = DetectFormat(encodeJPEG(t))
	if err != nil {
		t.Fatalf("Expected JPEG to be detected: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("Expected format 'jpeg', got %q", format)
	}
}

func TestDetectFormatRejectsGarbage(t *testing.T) {
	if _, err := DetectFormat([]byte("notanimage")); err == nil {
		t.Error("Expected an error for non-image data")
	}
	if _, err := DetectFormat(nil); err == nil {
		t.Error("Expected an error for empty data")
	}
}

func TestNewStorageValidation(t *testing.T) {
	if _, err := NewStorage("", "recipes"); err == nil {
		t.Error("Expected an error for empty base path")
	}
	if _, err := NewStorage(t.TempDir(), ""); err == nil {
		t.Error("Expected an error for empty subdirectory")
	}
}

func TestStorageSaveGetDelete(t *testing.T) {
	store, err := NewStorage(t.TempDir(), "recipes")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	data := encodePNG(t)
	if err := store.Save("pie.png", data); err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}
	if !store.Exists("pie.png") {
		t.Error("Expected saved image to exist")
	}

	got, err := store.Get("pie.png")
	if err != nil {
		t.Fatalf("Failed to read image back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Expected read data to match saved data")
	}

	if err := store.Delete("pie.png"); err != nil {
		t.Fatalf("Failed to delete image: %v", err)
	}
	if store.Exists("pie.png") {
		t.Error("Expected image to be gone after delete")
	}

	// Deleting again is not an error
	if err := store.Delete("pie.png"); err != nil {
		t.Errorf("Expected deleting a missing file to succeed, got %v", err)
	}
}

func TestStorageSaveValidation(t *testing.T) {
	store, err := NewStorage(t.TempDir(), "recipes")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := store.Save("", []byte("data")); err == nil {
		t.Error("Expected an error for empty name")
	}
	if err := store.Save("empty.png", nil); err == nil {
		t.Error("Expected an error for empty data")
	}
	if _, err := store.Get("missing.png"); err == nil {
		t.Error("Expected an error for missing file")
	}
}

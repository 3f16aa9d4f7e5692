// Package crypto tests for credential encryption.
package crypto

import (
	"bytes"
	"testing"
)

// TestEncryptDecryptRoundTrip verifies a value survives encryption.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := DeriveKey("machine-a")
	plaintext := []byte("bearer-token-value")

	ciphertext, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if ciphertext == string(plaintext) {
		t.Error("Expected ciphertext to differ from plaintext")
	}

	decrypted, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Expected %q, got %q", plaintext, decrypted)
	}
}

// TestEncryptNonDeterministic verifies each encryption uses a fresh nonce.
func TestEncryptNonDeterministic(t *testing.T) {
	key := DeriveKey("machine-a")

	a, err := Encrypt([]byte("same input"), key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := Encrypt([]byte("same input"), key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if a == b {
		t.Error("Expected different ciphertexts for repeated encryption")
	}
}

// TestDecryptWrongKey verifies decryption fails cleanly with the wrong key.
func TestDecryptWrongKey(t *testing.T) {
	ciphertext, err := Encrypt([]byte("secret"), DeriveKey("machine-a"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := Decrypt(ciphertext, DeriveKey("machine-b")); err != ErrInvalidCiphertext {
		t.Errorf("Expected ErrInvalidCiphertext, got %v", err)
	}
}

// TestDecryptGarbage verifies malformed input fails cleanly.
func TestDecryptGarbage(t *testing.T) {
	key := DeriveKey("machine-a")

	if _, err := Decrypt("not base64 at all!!!", key); err != ErrInvalidCiphertext {
		t.Errorf("Expected ErrInvalidCiphertext for bad base64, got %v", err)
	}
	if _, err := Decrypt("QUJD", key); err != ErrInvalidCiphertext {
		t.Errorf("Expected ErrInvalidCiphertext for truncated data, got %v", err)
	}
}

// TestEmptyKeyRejected verifies an empty key is never accepted.
func TestEmptyKeyRejected(t *testing.T) {
	if _, err := EncryptString("value", ""); err != ErrInvalidKey {
		t.Errorf("Expected ErrInvalidKey on encrypt, got %v", err)
	}
	if _, err := DecryptString("value", ""); err != ErrInvalidKey {
		t.Errorf("Expected ErrInvalidKey on decrypt, got %v", err)
	}
}

// TestDeriveKeyStable verifies key derivation is deterministic per machine.
func TestDeriveKeyStable(t *testing.T) {
	if !bytes.Equal(DeriveKey("m1"), DeriveKey("m1")) {
		t.Error("Expected stable key for the same machine ID")
	}
	if bytes.Equal(DeriveKey("m1"), DeriveKey("m2")) {
		t.Error("Expected different keys for different machine IDs")
	}
	if len(DeriveKey("m1")) != 32 {
		t.Error("Expected a 32-byte key")
	}
}

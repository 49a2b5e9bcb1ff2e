package gpg

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// writeTestKeys generates a fresh key pair and writes armored private/public files
func writeTestKeys(t *testing.T, dir string) (privPath, pubPath string, entity *openpgp.Entity) {
	t.Helper()

	entity, err := openpgp.NewEntity("Variants Test", "", "variants@example.com", nil)
	if err != nil {
		t.Fatalf("NewEntity() error = %v", err)
	}

	var priv bytes.Buffer
	w, err := armor.Encode(&priv, openpgp.PrivateKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.SerializePrivate(w, nil); err != nil {
		t.Fatalf("SerializePrivate() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var pub bytes.Buffer
	w, err = armor.Encode(&pub, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	privPath = filepath.Join(dir, "signing.asc")
	pubPath = filepath.Join(dir, "signing.pub.asc")
	if err := os.WriteFile(privPath, priv.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pubPath, pub.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	return privPath, pubPath, entity
}

func writeDescriptor(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "app-release.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	privPath, pubPath, entity := writeTestKeys(t, dir)
	descPath := writeDescriptor(t, dir, `{"module":"app"}`)

	signer, err := NewSignerFromFile(privPath, nil)
	if err != nil {
		t.Fatalf("NewSignerFromFile() error = %v", err)
	}

	sigPath, err := signer.SignFile(context.Background(), descPath)
	if err != nil {
		t.Fatalf("SignFile() error = %v", err)
	}
	if sigPath != descPath+".asc" {
		t.Errorf("sigPath = %v, want %v", sigPath, descPath+".asc")
	}

	v := NewVerifier()
	if err := v.ImportKeyFromFile(pubPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}

	fingerprint, err := v.VerifySignatureFromFile(descPath, sigPath)
	if err != nil {
		t.Fatalf("VerifySignatureFromFile() error = %v", err)
	}
	if fingerprint != signer.Fingerprint() {
		t.Errorf("fingerprint = %v, want %v", fingerprint, signer.Fingerprint())
	}
	if len(fingerprint) != len(entity.PrimaryKey.Fingerprint)*2 {
		t.Errorf("fingerprint length = %d", len(fingerprint))
	}
}

func TestVerify_TamperedDescriptor(t *testing.T) {
	dir := t.TempDir()
	privPath, pubPath, _ := writeTestKeys(t, dir)
	descPath := writeDescriptor(t, dir, `{"module":"app"}`)

	signer, err := NewSignerFromFile(privPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	sigPath, err := signer.SignFile(context.Background(), descPath)
	if err != nil {
		t.Fatal(err)
	}

	writeDescriptor(t, dir, `{"module":"evil"}`)

	v := NewVerifier()
	if err := v.ImportKeyFromFile(pubPath); err != nil {
		t.Fatal(err)
	}
	_, err = v.VerifySignatureFromFile(descPath, sigPath)
	if err == nil || !strings.Contains(err.Error(), "signature verification failed") {
		t.Errorf("VerifySignatureFromFile() error = %v, want verification failure", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	dir := t.TempDir()
	privPath, _, _ := writeTestKeys(t, dir)
	otherDir := t.TempDir()
	_, otherPub, _ := writeTestKeys(t, otherDir)
	descPath := writeDescriptor(t, dir, `{"module":"app"}`)

	signer, err := NewSignerFromFile(privPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	sigPath, err := signer.SignFile(context.Background(), descPath)
	if err != nil {
		t.Fatal(err)
	}

	v := NewVerifier()
	if err := v.ImportKeyFromFile(otherPub); err != nil {
		t.Fatal(err)
	}
	if _, err := v.VerifySignatureFromFile(descPath, sigPath); err == nil {
		t.Error("VerifySignatureFromFile() should fail with an unrelated key")
	}
}

func TestNewSigner_PublicKeyOnly(t *testing.T) {
	dir := t.TempDir()
	_, pubPath, _ := writeTestKeys(t, dir)

	_, err := NewSignerFromFile(pubPath, nil)
	if err == nil || !strings.Contains(err.Error(), "no private key") {
		t.Errorf("NewSignerFromFile() error = %v, want missing private key", err)
	}
}

func TestNewSignerFromFile_NonexistentFile(t *testing.T) {
	if _, err := NewSignerFromFile("/nonexistent/key.asc", nil); err == nil {
		t.Error("NewSignerFromFile() should fail for a missing file")
	}
}

func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_Garbage(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "garbage.asc")
	if err := os.WriteFile(keyPath, []byte("not a key"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := NewVerifier().ImportKeyFromFile(keyPath); err == nil {
		t.Error("Expected error for invalid key file, got nil")
	}
}

func TestVerifier_NoKeysImported(t *testing.T) {
	_, err := NewVerifier().VerifySignatureFromFile("a.json", "a.json.asc")
	if err == nil || !strings.Contains(err.Error(), "no OpenPGP keys imported") {
		t.Errorf("error = %v, want missing keyring", err)
	}
}

func TestVerifier_KeyringOperations(t *testing.T) {
	dir := t.TempDir()
	_, pubPath, _ := writeTestKeys(t, dir)

	v := NewVerifier()
	if size := v.GetKeyringSize(); size != 0 {
		t.Errorf("Initial keyring size = %d, want 0", size)
	}
	if err := v.ImportKeyFromFile(pubPath); err != nil {
		t.Fatal(err)
	}
	if size := v.GetKeyringSize(); size != 1 {
		t.Errorf("Keyring size after import = %d, want 1", size)
	}
	v.ClearKeyring()
	if size := v.GetKeyringSize(); size != 0 {
		t.Errorf("Keyring size after clear = %d, want 0", size)
	}
}

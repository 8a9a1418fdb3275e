package tokenpkg

import (
	"testing"
	"time"

	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPasetoMaker(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	userID := randompkg.IntBetween(1, 1000)
	email := randompkg.Email()
	duration := time.Minute

	token, payload, err := maker.CreateToken(userID, email, duration)
	if err != nil {
		t.Fatalf("maker.CreateToken(%v, %v, %v) returned error: %v", userID, email, duration, err)
	}

	verified, err := maker.VerifyToken(token)
	if err != nil {
		t.Fatalf("maker.VerifyToken(%v) returned error: %v", token, err)
	}

	want := &Payload{
		UserID:    userID,
		Email:     email,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	ignore := cmpopts.IgnoreFields(Payload{}, "ID")
	delta := cmpopts.EquateApproxTime(time.Minute)

	if diff := cmp.Diff(want, payload, ignore, delta); diff != "" {
		t.Errorf("maker.CreateToken returned unexpected diff: %v", diff)
	}

	if diff := cmp.Diff(want, verified, ignore, delta); diff != "" {
		t.Errorf("maker.VerifyToken returned unexpected diff: %v", diff)
	}
}

func TestExpiredPasetoToken(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	token, _, err := maker.CreateToken(1, randompkg.Email(), -time.Minute)
	if err != nil {
		t.Fatalf("maker.CreateToken returned error: %v", err)
	}

	_, err = maker.VerifyToken(token)
	if err != ErrExpiredToken {
		t.Errorf("maker.VerifyToken(%v) returned unexpected error: %v", token, err)
	}
}

func TestPasetoWrongKey(t *testing.T) {
	t.Parallel()

	maker, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker returned error: %v", err)
	}

	other, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker returned error: %v", err)
	}

	token, _, err := maker.CreateToken(1, randompkg.Email(), time.Minute)
	if err != nil {
		t.Fatalf("maker.CreateToken returned error: %v", err)
	}

	_, err = other.VerifyToken(token)
	if err != ErrInvalidToken {
		t.Errorf("other.VerifyToken(%v) returned unexpected error: %v", token, err)
	}
}

func TestNewPasetoMakerKeySize(t *testing.T) {
	t.Parallel()

	_, err := NewPasetoMaker(randompkg.String(10))
	if err == nil {
		t.Errorf("NewPasetoMaker with a short key returned no error")
	}
}

package security

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: no .env file found: %v", err)
		}
		secret = os.Getenv("JWT_SECRET")
	}

	if secret == "" {
		log.Println("Warning: JWT_SECRET is not set, using an insecure development secret")
		secret = "development-secret"
	}

	jwtSecret = []byte(secret)
}

// Account is a credential configured through the environment. The demo has
// no user store; AUTH_ACCOUNTS holds a comma-separated list of
// username:bcrypt-hash:role entries.
type Account struct {
	Username string
	Role     string
}

// Claims is the token payload: the account identity plus the standard
// registered claims.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func AuthenticateUser(username, password string) (*Account, error) {
	for _, entry := range strings.Split(os.Getenv("AUTH_ACCOUNTS"), ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 || parts[0] != username {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(parts[1]), []byte(password)); err != nil {
			return nil, err
		}
		return &Account{Username: parts[0], Role: parts[2]}, nil
	}

	return nil, errors.New("unknown username")
}

// GenerateJWT issues a signed token for the account, valid for 24 hours.
func GenerateJWT(account *Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: account.Username,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

package controllers

import (
	"bts/src/db"
	"bts/src/models"
	"bts/src/types"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func generateJWT(account *models.Account) (string, error) {
	claims := types.Claims{
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(account.ID)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	db := db.GetDb()
	var account models.Account
	if err := db.
		Model(&models.Account{}).
		Where(&models.Account{Email: body.Email}).
		First(&account).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusNotFound, err
	}
	signed, err := generateJWT(&account)
	if err != nil {
		log.Printf("Error signing token for account [%d]: %s\n", account.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &signed, http.StatusOK, nil
}

func AuthRegister(ctx *gin.Context) (id uint, status int, err error) {
	var body types.RegisterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return 0, http.StatusBadRequest, err
	}
	db := db.GetDb()
	account := models.Account{
		Email: body.Email,
		Name:  body.Name,
		Role:  types.ROLE_PASSENGER,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.Account
		err := tx.Where(&models.Account{Email: body.Email}).First(&existing).Error
		if err == nil {
			return errors.New("email is already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return 0, http.StatusBadRequest, err
	}
	return account.ID, http.StatusOK, nil
}

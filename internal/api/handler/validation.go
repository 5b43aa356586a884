package handler

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxTweetRunes = 280

// RegisterValidations installs the tweetcontent rule on gin's binding
// validator: non-blank after trimming, at most 280 runes.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("tweetcontent", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimSpace(s) != "" && len([]rune(s)) <= maxTweetRunes
	})
}

package models

import "github.com/go-playground/validator"

// Validate is shared by models and controllers; validator caches struct metadata per instance.
var Validate = validator.New()

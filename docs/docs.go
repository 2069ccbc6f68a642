// Package docs registers the pkg/httpapi swagger spec with swaggo/swag the
// way `swag init` generates a docs package from the handler annotations in
// pkg/httpapi; swaggo/http-swagger's WrapHandler serves whatever spec is
// registered under the instance name below.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported swagger spec metadata, the shape swag init
// emits into docs.go for http-swagger to read at serve time.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "editpilot API",
	Description:      "Edit-block engine and incremental markdown renderer HTTP surface.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

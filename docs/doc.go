// Package docs provides generated OpenAPI documentation.
//
// Proffer API
//
//	@title			Proffer API
//	@version		1.0
//	@description	Discovery document intake, response drafting, and export API.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/profferhq/proffer
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8585
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/proffer/serve.go -o ./swagger --parseDependency --parseInternal

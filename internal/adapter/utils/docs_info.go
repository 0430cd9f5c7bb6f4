// @title           Course Material Retrieval API
// @version         1.0
// @description     Ingests course materials into an embedding store and serves semantic retrieval over them.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   platform@campuslms.dev

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package utils

//run redis
//docker run -p 6379:6379 -d redis

//run postgres
//docker run -p 5432:5432 -e POSTGRES_PASSWORD=postgres -e POSTGRES_DB=campuslms -d postgres

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs

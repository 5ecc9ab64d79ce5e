package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPublicURL(t *testing.T) {
	assert.Equal(t,
		"http://localhost:9000/item-images/items/a.png",
		BuildPublicURL("", "localhost:9000", false, "item-images", "items/a.png"))
	assert.Equal(t,
		"https://minio.campus.edu/item-images/items/a.png",
		BuildPublicURL("", "minio.campus.edu", true, "item-images", "/items/a.png"))
	assert.Equal(t,
		"http://cdn.local/item-images/items/a.png",
		BuildPublicURL("http://cdn.local/", "localhost:9000", false, "item-images", "items/a.png"))
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t,
		"host=db port=5432 user=u password=p dbname=lf sslmode=disable",
		PostgresDSN("db", 5432, "u", "p", "lf"))
}

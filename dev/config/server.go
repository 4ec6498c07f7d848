package config

const SERVER_YML = `
rolodex:
  listener:
    port: 3000

database:
  driver: sqlite
  sqlite:
    dir:
  postgres:
    dsn: "host=localhost user=rolodex password=rolodex dbname=rolodex port=5432 sslmode=disable"
`

package ports

//go:generate mockgen -source=kv_cache.go -destination=mocks/kv_cache_mock.go -package=mocks
//go:generate mockgen -source=catalog.go -destination=mocks/catalog_mock.go -package=mocks
//go:generate mockgen -source=order_repository.go -destination=mocks/order_repository_mock.go -package=mocks
//go:generate mockgen -source=payment_gateway.go -destination=mocks/payment_gateway_mock.go -package=mocks
//go:generate mockgen -source=validator.go -destination=mocks/validator_mock.go -package=mocks

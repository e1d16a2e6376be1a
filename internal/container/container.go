package container

import "github.com/samber/do"

// RegisterServer wires everything the HTTP server needs. Services are built
// lazily on first invocation.
func RegisterServer(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	RedisPackage(injector)
	PostgresPackage(injector)
	RepositoryPackage(injector)
	AuthPackage(injector)
	ServicePackage(injector)
	PublisherPackage(injector)
	HTTPPackage(injector)
}

// RegisterConsumer wires the audit consumer.
func RegisterConsumer(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	RedisPackage(injector)
	ConsumerPackage(injector)
}

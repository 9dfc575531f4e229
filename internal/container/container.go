package container

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userboard/userboard/config"
)

// app-level container to share constructed components across packages.
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
)

func SetConfig(c *config.Config)    { cfg = c }
func GetConfig() *config.Config     { return cfg }
func SetLogger(l *logrus.Logger)    { logger = l }
func GetLogger() *logrus.Logger     { return logger }
func SetMongo(c *mongo.Client)      { mongoClient = c }
func GetMongo() *mongo.Client       { return mongoClient }
func SetMongoDB(db *mongo.Database) { mongoDB = db }
func GetMongoDB() *mongo.Database   { return mongoDB }

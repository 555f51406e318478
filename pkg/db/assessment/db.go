package assessment

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kleo07/MindSpaceX/pkg/db"
)

const (
	COLLECTION_NAME_ASSESSMENTS = "assessments"
)

type AssessmentDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewAssessmentDBService(configs db.DBConfig) (*AssessmentDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	aDBSc := &AssessmentDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		aDBSc.CreateDefaultIndexes()
	}
	return aDBSc, nil
}

func (dbService *AssessmentDBService) getDBName() string {
	return dbService.DBNamePrefix + "mindspacex"
}

func (dbService *AssessmentDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *AssessmentDBService) collectionAssessments() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_ASSESSMENTS)
}

var indexesForAssessmentsCollection = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("idx_assessments_userId").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_assessments_email"),
	},
}

func (dbService *AssessmentDBService) CreateDefaultIndexes() {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionAssessments().Indexes().CreateMany(ctx, indexesForAssessmentsCollection)
	if err != nil {
		slog.Error("Error creating indexes for assessments", slog.String("error", err.Error()))
	}
}

func (dbService *AssessmentDBService) DropIndexes(dropAll bool) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if dropAll {
		_, err := dbService.collectionAssessments().Indexes().DropAll(ctx)
		if err != nil {
			slog.Error("Error dropping all indexes for assessments", slog.String("error", err.Error()))
		}
		return
	}

	for _, index := range indexesForAssessmentsCollection {
		if index.Options.Name == nil {
			continue
		}
		indexName := *index.Options.Name
		_, err := dbService.collectionAssessments().Indexes().DropOne(ctx, indexName)
		if err != nil {
			slog.Error("Error dropping index for assessments", slog.String("error", err.Error()), slog.String("indexName", indexName))
		}
	}
}

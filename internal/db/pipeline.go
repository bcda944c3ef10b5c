package db

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// lookupOne joins a single document by id and flattens the result, keeping
// the outer document when nothing matches.
func lookupOne(from, localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + as},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// lookupMany joins every document of from whose foreignField equals _id.
func lookupMany(from, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}}}
}

var newestFirst = bson.D{{Key: "$sort", Value: bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}}}

func recordDetailPipeline(match bson.M, withPayments bool, limit int64) mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		newestFirst,
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: limit}})
	}
	p = append(p, lookupOne(CarsCollection, "car_id", "car")...)
	p = append(p, lookupOne(ServicesCollection, "service_id", "service")...)
	p = append(p, lookupMany(PartsUsedCollection, "service_record_id", "parts_used"))
	if withPayments {
		p = append(p, lookupMany(PaymentsCollection, "service_record_id", "payments"))
	}
	return p
}

func paymentDetailPipeline(match bson.M) mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		newestFirst,
	}
	p = append(p, lookupOne(ServiceRecordsCollection, "service_record_id", "service_record")...)
	p = append(p, lookupOne(CarsCollection, "service_record.car_id", "car")...)
	p = append(p, lookupOne(ServicesCollection, "service_record.service_id", "service")...)
	return p
}

// inventoryPipeline groups parts by name and sums quantity and
// quantity*unit cost on the server.
func inventoryPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$name"},
			{Key: "total_quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "total_cost", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$quantity", "$cost"}},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

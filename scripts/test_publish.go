//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type LocationUpdateEvent struct {
	TouristID uuid.UUID `json:"tourist_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timestamp time.Time `json:"timestamp"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	touristID := flag.String("tourist", "", "Tourist UUID (random if empty)")
	lat := flag.Float64("lat", 41.4027042, "Latitude")
	lon := flag.Float64("lon", 2.1599563, "Longitude")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	id := uuid.New()
	if *touristID != "" {
		parsed, err := uuid.Parse(*touristID)
		if err != nil {
			log.Fatalf("Invalid tourist UUID: %v", err)
		}
		id = parsed
	}

	// Тестовое событие позиции
	event := LocationUpdateEvent{
		TouristID: id,
		Lat:       *lat,
		Lon:       *lon,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:location:update",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:location:update\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Tourist ID: %s\n", event.TouristID)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", event.Lat, event.Lon)

	// Ожидание ответа
	fmt.Printf("\n⏳ Waiting for tourist event in stream:safety:events...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:safety:events", "0"},
				Count:   50,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if entityID, ok := response["entity_id"].(string); ok {
						if entityID == event.TouristID.String() {
							fmt.Printf("\n✅ Event received!\n")
							prettyJSON, _ := json.MarshalIndent(response, "", "  ")
							fmt.Printf("%s\n", prettyJSON)
							return
						}
					}
				}
			}
		}
	}
}

package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/internal/pkg/cache"
	"github.com/garagehub/GarageHub/internal/pkg/database"
)

const (
	CacheKeyCustomersTotal    = "statistics:customers:total"
	CacheKeyVehiclesTotal     = "statistics:vehicles:total"
	CacheKeyAppointmentsDaily = "statistics:appointments:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration           = 30 * time.Minute
)

// StatisticsData holds the dashboard counters for the garage.
type StatisticsData struct {
	TodayAppointments int
	TotalCustomers    int
	TotalVehicles     int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached counters are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has passed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next read to refresh the cache.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalCustomers int64
	if err := db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		log.Printf("Error counting customers: %v", err)
		return err
	}

	var totalVehicles int64
	if err := db.Model(&models.Vehicle{}).Count(&totalVehicles).Error; err != nil {
		log.Printf("Error counting vehicles: %v", err)
		return err
	}

	var todayAppointments int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.Appointment{}).Where("scheduled_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayAppointments).Error; err != nil {
		log.Printf("Error counting today's appointments: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyCustomersTotal, strconv.FormatInt(totalCustomers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching customer count: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyVehiclesTotal, strconv.FormatInt(totalVehicles, 10), CacheExpiration); err != nil {
		log.Printf("Error caching vehicle count: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyAppointmentsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayAppointments, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's appointments: %v", err)
		return err
	}

	return nil
}

// GetTotalCustomers returns the total number of customers from cache or database
func GetTotalCustomers() int {
	val, err := cache.Get(CacheKeyCustomersTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
			log.Printf("Error counting customers: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyCustomersTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching customer count: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalVehicles returns the total number of vehicles from cache or database
func GetTotalVehicles() int {
	val, err := cache.Get(CacheKeyVehiclesTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Vehicle{}).Count(&count).Error; err != nil {
			log.Printf("Error counting vehicles: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyVehiclesTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching vehicle count: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayAppointments returns the number of appointments scheduled today from cache or database
func GetTodayAppointments() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyAppointmentsDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.Appointment{}).Where("scheduled_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's appointments: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's appointments: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatisticsData returns all statistics data as StatisticsData structure
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayAppointments: GetTodayAppointments(),
		TotalCustomers:    GetTotalCustomers(),
		TotalVehicles:     GetTotalVehicles(),
	}
}

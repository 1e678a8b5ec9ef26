package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/putrawdn/restaurant-mgt/models"
)

// Event types pushed to connected staff/admin clients.
const (
	EventReservationCreate = "reservation_created"
	EventReservationUpdate = "reservation_update"
	EventOrderCreate       = "order_created"
	EventPaymentCaptured   = "payment_captured"
	EventStaffNotif        = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the websocket connections of back-office clients (staff, admin)
// and fans broadcasts out to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient releases a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastReservationCreate announces a new booking.
func BroadcastReservationCreate(res models.Reservation) {
	broadcast(Message{
		Event: EventReservationCreate,
		Data:  res,
	})
}

// BroadcastReservationUpdate announces a status transition.
func BroadcastReservationUpdate(res models.Reservation) {
	broadcast(Message{
		Event: EventReservationUpdate,
		Data:  res,
	})
}

// BroadcastOrderCreate announces a new order.
func BroadcastOrderCreate(order models.SalesOrder) {
	broadcast(Message{
		Event: EventOrderCreate,
		Data:  order,
	})
}

// BroadcastPaymentCaptured announces a captured payment and the closed order.
func BroadcastPaymentCaptured(payment models.Payment, order models.SalesOrder) {
	broadcast(Message{
		Event: EventPaymentCaptured,
		Data: map[string]interface{}{
			"payment": payment,
			"order":   order,
		},
	})
}

// BroadcastStaffNotification sends a plain text notification.
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	var dead []*websocket.Conn
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			dead = append(dead, conn)
		}
	}

	// a failed write means the peer is gone; stop broadcasting to it
	for _, conn := range dead {
		delete(hub.clients, conn)
		conn.Close()
	}
}

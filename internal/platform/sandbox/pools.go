package sandbox

// Reference pools sampled by Generator. Read only.
var (
	firstNames = []string{
		"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Jessica", "William", "Ashley",
		"James", "Amanda", "Daniel", "Jennifer", "Christopher", "Lisa", "Matthew", "Michelle", "Anthony", "Kimberly",
		"Mark", "Amy", "Donald", "Angela", "Steven", "Helen", "Paul", "Anna", "Andrew", "Brenda",
		"Kenneth", "Emma", "Kevin", "Olivia", "Brian", "Cynthia", "George", "Marie", "Edward", "Janet",
		"Ronald", "Catherine", "Timothy", "Frances", "Jason", "Christine", "Jeffrey", "Samantha", "Ryan", "Deborah",
		"Jacob", "Rachel", "Gary", "Carolyn", "Nicholas", "Susan", "Eric", "Virginia", "Jonathan", "Maria",
		"Stephen", "Heather", "Larry", "Diane", "Justin", "Ruth", "Scott", "Julie", "Brandon", "Joyce",
		"Benjamin", "Victoria", "Samuel", "Kelly", "Gregory", "Christina", "Alexander", "Joan", "Patrick", "Evelyn",
		"Frank", "Lauren", "Raymond", "Judith", "Jack", "Megan", "Dennis", "Cheryl", "Jerry", "Andrea",
		"Tyler", "Hannah", "Aaron", "Jacqueline", "Jose", "Martha", "Henry", "Gloria", "Adam", "Teresa",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
		"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
		"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
		"Gomez", "Phillips", "Evans", "Turner", "Diaz", "Parker", "Cruz", "Edwards", "Collins", "Reyes",
		"Stewart", "Morris", "Morales", "Murphy", "Cook", "Rogers", "Gutierrez", "Ortiz", "Morgan", "Cooper",
		"Peterson", "Bailey", "Reed", "Kelly", "Howard", "Ramos", "Kim", "Cox", "Ward", "Richardson",
		"Watson", "Brooks", "Chavez", "Wood", "James", "Bennett", "Gray", "Mendoza", "Ruiz", "Hughes",
		"Price", "Alvarez", "Castillo", "Sanders", "Patel", "Myers", "Long", "Ross", "Foster", "Jimenez",
	}

	cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio",
		"San Diego", "Dallas", "San Jose", "Austin", "Jacksonville", "Fort Worth", "Columbus",
		"Indianapolis", "Charlotte", "San Francisco", "Seattle", "Denver", "Washington", "Boston",
		"El Paso", "Detroit", "Nashville", "Portland", "Memphis", "Oklahoma City", "Las Vegas",
		"Louisville", "Baltimore", "Milwaukee", "Albuquerque", "Tucson", "Fresno", "Sacramento",
		"Kansas City", "Long Beach", "Mesa", "Atlanta", "Colorado Springs", "Virginia Beach", "Raleigh",
		"Omaha", "Miami", "Oakland", "Minneapolis", "Tulsa", "Wichita", "New Orleans",
	}

	states = []string{
		"California", "Texas", "Florida", "New York", "Pennsylvania", "Illinois", "Ohio", "Georgia",
		"North Carolina", "Michigan", "New Jersey", "Virginia", "Washington", "Arizona", "Massachusetts",
		"Tennessee", "Indiana", "Missouri", "Maryland", "Wisconsin", "Colorado", "Minnesota",
		"South Carolina", "Alabama", "Louisiana", "Kentucky", "Oregon", "Oklahoma", "Connecticut",
		"Utah", "Iowa", "Nevada", "Arkansas", "Mississippi", "Kansas", "New Mexico", "Nebraska",
		"West Virginia", "Idaho", "Hawaii", "New Hampshire", "Maine", "Montana", "Rhode Island",
		"Delaware", "South Dakota", "North Dakota", "Alaska", "Vermont", "Wyoming",
	}

	countries = []string{
		"United States", "Canada", "United Kingdom", "Australia", "Germany", "France", "Spain", "Italy",
	}

	occupations = []string{
		"Software Engineer", "Teacher", "Doctor", "Nurse", "Lawyer", "Accountant", "Manager",
		"Sales Representative", "Marketing Specialist", "Chef", "Electrician", "Plumber", "Mechanic",
		"Artist", "Writer", "Consultant", "Architect", "Designer", "Photographer", "Analyst",
		"Technician", "Administrator", "Coordinator", "Supervisor", "Director", "Executive",
		"Entrepreneur", "Student", "Retired", "Unemployed",
	}

	insuranceProviders = []string{
		"Blue Cross Blue Shield", "Anthem", "UnitedHealth", "Aetna", "Cigna", "Humana",
		"Kaiser Permanente", "Molina Healthcare", "Centene", "WellCare", "Medicaid", "Medicare", "Tricare",
	}

	relations = []string{
		"Spouse", "Parent", "Child", "Sibling", "Friend", "Partner", "Grandparent", "Cousin", "Uncle", "Aunt",
	}

	streetNames = []string{
		"Main", "Oak", "Pine", "Maple", "Cedar", "Elm", "Washington", "Park", "Hill", "Church",
		"School", "State", "Broad", "High", "Union", "Water", "Mill", "River", "Lake", "Forest",
	}

	streetTypes = []string{"St", "Ave", "Rd", "Dr", "Blvd", "Ln", "Way", "Ct"}

	emailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "email.com"}
)

const nationality = "American"
